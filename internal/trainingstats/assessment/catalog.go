package assessment

// Skill is one entry of the skill catalog.
type Skill struct {
	ID       string  `json:"id" toml:"id"`
	Name     string  `json:"name" toml:"name"`
	MaxScore float64 `json:"maxScore" toml:"max_score"`
}

// Catalog is the fixed, ordered enumeration of assessable skills.
type Catalog struct {
	skills []Skill
	byID   map[string]Skill
}

// NewCatalog builds a catalog; later duplicates of an id are ignored.
func NewCatalog(skills ...Skill) *Catalog {
	c := &Catalog{
		skills: make([]Skill, 0, len(skills)),
		byID:   make(map[string]Skill, len(skills)),
	}
	for _, s := range skills {
		if s.ID == "" {
			continue
		}
		if _, ok := c.byID[s.ID]; ok {
			continue
		}
		c.skills = append(c.skills, s)
		c.byID[s.ID] = s
	}
	return c
}

// DefaultCatalog is the catalog coaches assess players against unless configured otherwise.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Skill{ID: "serve", Name: "Serve", MaxScore: 10},
		Skill{ID: "return", Name: "Return of Serve", MaxScore: 10},
		Skill{ID: "dinks", Name: "Dinks", MaxScore: 10},
		Skill{ID: "drops", Name: "Third Shot Drop", MaxScore: 10},
		Skill{ID: "drives", Name: "Drives", MaxScore: 10},
		Skill{ID: "volleys", Name: "Volleys", MaxScore: 10},
		Skill{ID: "resets", Name: "Resets", MaxScore: 10},
		Skill{ID: "lobs", Name: "Lobs", MaxScore: 10},
		Skill{ID: "footwork", Name: "Footwork", MaxScore: 10},
		Skill{ID: "strategy", Name: "Strategy", MaxScore: 10},
	)
}

// Skills returns the catalog skills in catalog order.
func (c *Catalog) Skills() []Skill {
	if c == nil {
		return nil
	}
	skills := make([]Skill, len(c.skills))
	copy(skills, c.skills)
	return skills
}

func (c *Catalog) Get(id string) (Skill, bool) {
	if c == nil {
		return Skill{}, false
	}
	s, ok := c.byID[id]
	return s, ok
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.skills)
}
