package storage

// Task is a quest. RepeatDays holds weekdays (0=Sunday..6=Saturday);
// an empty set makes it a one-off.
type Task struct {
	ID                string  `json:"id"`
	Text              string  `json:"text"`
	DueTimeMins       *int    `json:"dueTimeMins"`
	DueDisplay        string  `json:"dueDisplay"`
	Penalty           int     `json:"penalty"`
	Reward            int     `json:"reward"`
	RepeatDays        []int   `json:"repeatDays"`
	Streak            int     `json:"streak"`
	Completed         bool    `json:"completed"`
	Failed            bool    `json:"failed"`
	LastCompletedDate *string `json:"lastCompletedDate"`
}

// IsRepeating reports whether the task recurs on at least one weekday.
func (t Task) IsRepeating() bool {
	return len(t.RepeatDays) > 0
}

// ScheduledOn reports whether the task is due on the given weekday.
func (t Task) ScheduledOn(weekday int) bool {
	if len(t.RepeatDays) == 0 {
		return true
	}
	for _, d := range t.RepeatDays {
		if d == weekday {
			return true
		}
	}
	return false
}

type Challenge struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Reward            int     `json:"reward"`
	Type              string  `json:"type"`
	Streak            int     `json:"streak"`
	Completed         bool    `json:"completed"`
	LastCompletedDate *string `json:"lastCompletedDate"`
	LastCompletedWeek *int    `json:"lastCompletedWeek"`
}

// Reward is a shop listing; it can be bought any number of times.
type Reward struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Cost int    `json:"cost"`
}

// InventoryItem is one purchased, not yet redeemed, reward.
type InventoryItem struct {
	Reward
	InstanceID   string `json:"instanceId"`
	PurchaseDate string `json:"purchaseDate"`
}

type LogEntry struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
	Learned   string `json:"learned"`
	Missed    string `json:"missed"`
	Notes     string `json:"notes"`
}

// State is the whole persisted blob.
type State struct {
	Points     int             `json:"points"`
	Tasks      []Task          `json:"tasks"`
	Challenges []Challenge     `json:"challenges"`
	Rewards    []Reward        `json:"rewards"`
	Inventory  []InventoryItem `json:"inventory"`
	Logs       []LogEntry      `json:"logs"`
}

// Normalize replaces absent collections with empty ones and clamps the
// point total so a partially written or older blob loads cleanly.
func (s *State) Normalize() {
	if s.Points < 0 {
		s.Points = 0
	}
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Challenges == nil {
		s.Challenges = []Challenge{}
	}
	if s.Rewards == nil {
		s.Rewards = []Reward{}
	}
	if s.Inventory == nil {
		s.Inventory = []InventoryItem{}
	}
	if s.Logs == nil {
		s.Logs = []LogEntry{}
	}
	for i := range s.Tasks {
		if s.Tasks[i].RepeatDays == nil {
			s.Tasks[i].RepeatDays = []int{}
		}
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		Points:     s.Points,
		Tasks:      make([]Task, len(s.Tasks)),
		Challenges: make([]Challenge, len(s.Challenges)),
		Rewards:    append([]Reward{}, s.Rewards...),
		Inventory:  append([]InventoryItem{}, s.Inventory...),
		Logs:       append([]LogEntry{}, s.Logs...),
	}
	for i, t := range s.Tasks {
		out.Tasks[i] = t.clone()
	}
	for i, c := range s.Challenges {
		out.Challenges[i] = c.clone()
	}
	return out
}

func (t Task) clone() Task {
	t.RepeatDays = append([]int{}, t.RepeatDays...)
	t.DueTimeMins = cloneInt(t.DueTimeMins)
	t.LastCompletedDate = cloneString(t.LastCompletedDate)
	return t
}

func (c Challenge) clone() Challenge {
	c.LastCompletedDate = cloneString(c.LastCompletedDate)
	c.LastCompletedWeek = cloneInt(c.LastCompletedWeek)
	return c
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
