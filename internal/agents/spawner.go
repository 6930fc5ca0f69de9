// Agent spawning: creates the initial population of a model.
package agents

// Spawner issues agents with sequential IDs.
type Spawner struct {
	nextID AgentID
}

// NewSpawner creates a spawner whose first agent gets ID 0.
func NewSpawner() *Spawner {
	return &Spawner{}
}

// SpawnPopulation creates count agents, each holding InitialWealth.
func (s *Spawner) SpawnPopulation(count int) []*Agent {
	if count <= 0 {
		return nil
	}

	population := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		population = append(population, s.spawnOne())
	}
	return population
}

func (s *Spawner) spawnOne() *Agent {
	id := s.nextID
	s.nextID++
	return &Agent{ID: id, Wealth: InitialWealth}
}
