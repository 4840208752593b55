package engine

import "gamifylife/internal/storage"

type ChallengeInput struct {
	Title  string
	Reward string
	Type   string
}

func (s *Store) AddChallenge(in ChallengeInput) (storage.Challenge, error) {
	title, err := normalizeText(in.Title)
	if err != nil {
		return storage.Challenge{}, err
	}

	var c storage.Challenge
	s.mutate(OpAddChallenge, func() bool {
		c = storage.Challenge{
			ID:     s.newID(),
			Title:  title,
			Reward: ParseAmount(in.Reward, DefaultChallengeReward),
			Type:   string(ParseChallengeType(in.Type)),
		}
		s.state.Challenges = append([]storage.Challenge{c}, s.state.Challenges...)
		return true
	})
	return c, nil
}

// ToggleChallenge works like ToggleTask with a type-dependent streak bonus
// (10 daily, 50 weekly). Completing stamps both the date and the ISO week.
func (s *Store) ToggleChallenge(id string) ToggleResult {
	res := ToggleResult{ID: id}
	s.mutate(OpToggleChallenge, func() bool {
		i := s.challengeIndex(id)
		if i < 0 {
			return false
		}
		res.Found = true
		c := &s.state.Challenges[i]
		mult := ChallengeType(c.Type).StreakMultiplier()

		res.LevelBefore = s.levelLocked()
		if !c.Completed {
			res.Amount = c.Reward
			res.Bonus = c.Streak * mult
			s.updatePointsLocked(res.Amount, res.Bonus)
			now := s.now()
			today := DateKey(now, s.loc)
			week := ISOWeek(now, s.loc)
			c.Completed = true
			c.Streak++
			c.LastCompletedDate = &today
			c.LastCompletedWeek = &week
		} else {
			prev := max(0, c.Streak-1)
			res.Amount = -(c.Reward + prev*mult)
			s.updatePointsLocked(res.Amount, 0)
			c.Completed = false
			c.Streak = prev
		}
		res.Completed = c.Completed
		res.Streak = c.Streak
		res.LevelAfter = s.levelLocked()
		res.LevelUp = res.LevelAfter > res.LevelBefore
		res.LevelDown = res.LevelAfter < res.LevelBefore
		return true
	})
	return res
}

func (s *Store) DeleteChallenge(id string) bool {
	removed := false
	s.mutate(OpDeleteChallenge, func() bool {
		i := s.challengeIndex(id)
		if i < 0 {
			return false
		}
		s.state.Challenges = append(s.state.Challenges[:i], s.state.Challenges[i+1:]...)
		removed = true
		return true
	})
	return removed
}

func (s *Store) Challenges() []storage.Challenge {
	return s.Snapshot().Challenges
}

func (s *Store) challengeIndex(id string) int {
	for i := range s.state.Challenges {
		if s.state.Challenges[i].ID == id {
			return i
		}
	}
	return -1
}
