package domain

// lateSlotStart marks the first start time that counts as late. Sessions
// from 16:30 on are strongly penalized.
const lateSlotStart = "16:30"

// Timeslot is one half-hour defense window. Start and End are wall-clock
// strings in HH:MM form; lexicographic order equals chronological order.
type Timeslot struct {
	ID        int
	Start     string
	End       string
	IsMorning bool
}

// IsLate reports whether the slot starts at or after 16:30.
func (t Timeslot) IsLate() bool {
	return t.Start >= lateSlotStart
}

// slotRewards is the published reward table for assignment starts. Earlier
// slots are worth more; late slots carry a prohibitive negative reward.
var slotRewards = map[string]int{
	"09:00": 1000,
	"09:30": 950,
	"10:00": 900,
	"10:30": 850,
	"11:00": 800,
	"11:30": 750,
	"13:00": 700,
	"13:30": 650,
	"14:00": 600,
	"14:30": 550,
	"15:00": 500,
	"15:30": 450,
	"16:00": 400,
}

// LateSlotReward is the reward of any late slot.
const LateSlotReward = -9999

// SlotRewardBounds are the per-assignment normalization anchors: the
// min-acceptable and max-possible rewards for a non-late slot.
const (
	MinSlotReward = 400
	MaxSlotReward = 1000
)

// Reward returns the slot's entry in the reward table. Non-late starts
// missing from the table fall back to the minimum acceptable reward.
func (t Timeslot) Reward() int {
	if t.IsLate() {
		return LateSlotReward
	}
	if r, ok := slotRewards[t.Start]; ok {
		return r
	}
	return MinSlotReward
}
