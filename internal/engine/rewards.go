package engine

import (
	"fmt"

	"gamifylife/internal/storage"
)

type RewardInput struct {
	Text string
	Cost string
}

// BuyResult reports a purchase. Locked means the player could not afford
// it and nothing changed.
type BuyResult struct {
	Locked bool
	Cost   int
	Points int
	Item   storage.InventoryItem
}

// AddReward appends a listing to the shop catalog. It has no point effect.
func (s *Store) AddReward(in RewardInput) (storage.Reward, error) {
	text, err := normalizeText(in.Text)
	if err != nil {
		return storage.Reward{}, err
	}

	var r storage.Reward
	s.mutate(OpAddReward, func() bool {
		r = storage.Reward{ID: s.newID(), Text: text, Cost: ParseAmount(in.Cost, 0)}
		s.state.Rewards = append(s.state.Rewards, r)
		return true
	})
	return r, nil
}

// DeleteReward removes a shop listing. Items already bought stay in the inventory.
func (s *Store) DeleteReward(id string) bool {
	removed := false
	s.mutate(OpDeleteReward, func() bool {
		i := s.rewardIndex(id)
		if i < 0 {
			return false
		}
		s.state.Rewards = append(s.state.Rewards[:i], s.state.Rewards[i+1:]...)
		removed = true
		return true
	})
	return removed
}

// BuyReward pays for a listing and puts a fresh instance in the inventory.
// The listing stays in the shop, so it can be bought again.
func (s *Store) BuyReward(id string) (BuyResult, error) {
	var (
		res   BuyResult
		found bool
	)
	s.mutate(OpBuyReward, func() bool {
		i := s.rewardIndex(id)
		if i < 0 {
			return false
		}
		found = true
		r := s.state.Rewards[i]
		res.Cost = r.Cost
		if s.state.Points < r.Cost {
			res.Locked = true
			res.Points = s.state.Points
			return false
		}
		s.updatePointsLocked(-r.Cost, 0)
		res.Item = storage.InventoryItem{
			Reward:       r,
			InstanceID:   s.newID(),
			PurchaseDate: DateKey(s.now(), s.loc),
		}
		s.state.Inventory = append([]storage.InventoryItem{res.Item}, s.state.Inventory...)
		res.Points = s.state.Points
		return true
	})
	if !found {
		return BuyResult{}, fmt.Errorf("reward %s: %w", id, ErrNotFound)
	}
	return res, nil
}

// RedeemInventoryItem consumes one purchased instance. The cost was already
// paid, so points are untouched.
func (s *Store) RedeemInventoryItem(instanceID string) (storage.InventoryItem, bool) {
	var (
		item     storage.InventoryItem
		redeemed bool
	)
	s.mutate(OpRedeemItem, func() bool {
		for i := range s.state.Inventory {
			if s.state.Inventory[i].InstanceID != instanceID {
				continue
			}
			item = s.state.Inventory[i]
			s.state.Inventory = append(s.state.Inventory[:i], s.state.Inventory[i+1:]...)
			redeemed = true
			return true
		}
		return false
	})
	return item, redeemed
}

func (s *Store) Rewards() []storage.Reward {
	return s.Snapshot().Rewards
}

func (s *Store) Inventory() []storage.InventoryItem {
	return s.Snapshot().Inventory
}

func (s *Store) rewardIndex(id string) int {
	for i := range s.state.Rewards {
		if s.state.Rewards[i].ID == id {
			return i
		}
	}
	return -1
}
