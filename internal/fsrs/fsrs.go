// Package fsrs implements the FSRS v6 forgetting-curve model used to
// schedule card reviews. Schedule is a pure function: all tuning constants
// live in Params, there is no I/O and no randomness (interval fuzzing is
// intentionally absent so scheduling stays deterministic).
package fsrs

import (
	"math"
	"time"
)

// State is the lifecycle stage of one review modality of a card.
type State string

const (
	StateNew        State = "new"
	StateLearning   State = "learning"
	StateReview     State = "review"
	StateRelearning State = "relearning"
)

// Valid reports whether s is one of the known lifecycle states.
func (s State) Valid() bool {
	switch s {
	case StateNew, StateLearning, StateReview, StateRelearning:
		return true
	}
	return false
}

// Rating is the learner's self-assessment of recall quality.
type Rating int

const (
	Again Rating = iota + 1 // failed to recall
	Hard
	Good
	Easy
)

// Valid reports whether r is within the accepted 1..4 range.
func (r Rating) Valid() bool {
	return r >= Again && r <= Easy
}

// MemoryState is the scheduling state of one modality of one card.
// It mirrors the per-modality columns on the cards table.
type MemoryState struct {
	State      State
	Stability  float64 // estimated days until recall probability decays to the retention target
	Difficulty float64 // intrinsic hardness, clamped to [1, 10]
	Reps       int
	Lapses     int
	Due        time.Time
	LastReview *time.Time
}

// DefaultWeights are the published FSRS v6 default parameter values.
var DefaultWeights = [21]float64{
	0.212, 1.2931, 2.3065, 8.2956, // w[0..3]  initial stability per rating
	6.4133, 0.8334, 3.0194, 0.001, // w[4..7]  difficulty
	1.8722, 0.1666, 0.796, 1.4835, // w[8..11] recall stability
	0.0614, 0.2629, 1.6483, 0.6014, // w[12..15] forget stability, hard penalty
	1.8729, 0.5425, 0.0912, 0.0658, // w[16..19] easy bonus, short-term
	0.1542, // w[20] decay exponent
}

const (
	minStability  = 0.001
	minDifficulty = 1.0
	maxDifficulty = 10.0
)

// Params holds the weight vector and tuning knobs of the model.
type Params struct {
	W                   [21]float64
	DesiredRetention    float64 // target recall probability at the due date
	MaximumInterval     int     // days
	GraduationStability float64 // stability at which learning/relearning cards enter review

	decay  float64 // -W[20]
	factor float64 // 0.9^(1/decay) - 1
}

// NewParams builds Params from a weight vector and tuning knobs,
// precomputing the decay constants.
func NewParams(w [21]float64, desiredRetention float64, maximumInterval int, graduationStability float64) *Params {
	decay := -w[20]
	return &Params{
		W:                   w,
		DesiredRetention:    desiredRetention,
		MaximumInterval:     maximumInterval,
		GraduationStability: graduationStability,
		decay:               decay,
		factor:              math.Pow(0.9, 1.0/decay) - 1.0,
	}
}

// DefaultParams returns Params with the published default weights,
// 90% desired retention, a 100-year interval cap and a 3-day graduation
// threshold.
func DefaultParams() *Params {
	return NewParams(DefaultWeights, 0.9, 36500, 3.0)
}

// Schedule applies one review to the given memory state and returns the next
// state, including the next due timestamp. The input is not mutated.
//
// State transitions:
//   - new: stability and difficulty initialize from rating-specific
//     constants; Again goes to relearning, otherwise the card enters
//     learning, or review directly when initial stability already clears
//     the graduation threshold.
//   - learning/relearning: a successful rating grows stability and
//     graduates to review once stability reaches the threshold; Again
//     collapses stability and moves to relearning.
//   - review: a successful rating grows stability and stays in review;
//     Again is a lapse: stability collapses and the card regresses to
//     relearning.
//
// Reps increments on every call; Lapses increments on every Again.
func (p *Params) Schedule(current MemoryState, rating Rating, now time.Time) MemoryState {
	next := current
	next.Reps++
	if rating == Again {
		next.Lapses++
	}

	switch current.State {
	case StateNew, "":
		// First review ever: the stored zero stability is the external
		// card-creation contract, not a model input.
		next.Stability = p.initStability(rating)
		next.Difficulty = p.initDifficulty(rating, true)
		switch {
		case rating == Again:
			next.State = StateRelearning
		case next.Stability >= p.GraduationStability:
			next.State = StateReview
		default:
			next.State = StateLearning
		}
	default:
		elapsed := 0.0
		if current.LastReview != nil {
			elapsed = now.Sub(*current.LastReview).Hours() / 24.0
			if elapsed < 0 {
				elapsed = 0
			}
		}
		s := math.Max(current.Stability, minStability)
		d := clampDifficulty(current.Difficulty)
		r := p.retrievability(elapsed, s)

		if rating == Again {
			next.Stability = p.forgetStability(d, s, r)
			next.State = StateRelearning
		} else {
			next.Stability = p.recallStability(d, s, r, rating)
			if current.State == StateReview || next.Stability >= p.GraduationStability {
				next.State = StateReview
			}
		}
		next.Difficulty = p.nextDifficulty(d, rating)
	}

	next.Due = now.AddDate(0, 0, p.Interval(next.Stability))
	reviewedAt := now
	next.LastReview = &reviewedAt
	return next
}

// Interval maps stability to the next review interval in whole days,
// clamped to [1, MaximumInterval]. Monotonically increasing in stability.
func (p *Params) Interval(stability float64) int {
	ivl := stability / p.factor * (math.Pow(p.DesiredRetention, 1.0/p.decay) - 1.0)
	days := int(math.Round(ivl))
	if days < 1 {
		days = 1
	}
	if days > p.MaximumInterval {
		days = p.MaximumInterval
	}
	return days
}

// Retrievability returns the modeled probability of recall after
// elapsedDays at the given stability: R(t, S) = (1 + FACTOR*t/S)^DECAY.
func (p *Params) retrievability(elapsedDays, stability float64) float64 {
	return math.Pow(1+p.factor*elapsedDays/stability, p.decay)
}

// initStability returns S0(G) = w[G-1].
func (p *Params) initStability(rating Rating) float64 {
	return math.Max(p.W[rating-1], minStability)
}

// initDifficulty returns D0(G) = w[4] - e^(w[5]*(G-1)) + 1.
func (p *Params) initDifficulty(rating Rating, clamp bool) float64 {
	d := p.W[4] - math.Exp(p.W[5]*float64(rating-1)) + 1
	if clamp {
		return clampDifficulty(d)
	}
	return d
}

// recallStability grows stability after a successful recall:
// S' = S * (1 + e^w[8] * (11-D) * S^(-w[9]) * (e^((1-R)*w[10]) - 1) * hardPenalty * easyBonus)
func (p *Params) recallStability(d, s, r float64, rating Rating) float64 {
	hardPenalty := 1.0
	if rating == Hard {
		hardPenalty = p.W[15]
	}
	easyBonus := 1.0
	if rating == Easy {
		easyBonus = p.W[16]
	}
	grown := s * (1 + math.Exp(p.W[8])*
		(11-d)*
		math.Pow(s, -p.W[9])*
		(math.Exp((1-r)*p.W[10])-1)*
		hardPenalty*easyBonus)
	// A successful recall never shrinks stability.
	return math.Max(grown, s)
}

// forgetStability collapses stability after a lapse:
// S' = min(w[11] * D^(-w[12]) * ((S+1)^w[13] - 1) * e^((1-R)*w[14]), S / e^(w[17]*w[18]))
// The second operand guarantees the result is strictly below the prior stability.
func (p *Params) forgetStability(d, s, r float64) float64 {
	long := p.W[11] *
		math.Pow(d, -p.W[12]) *
		(math.Pow(s+1, p.W[13]) - 1) *
		math.Exp((1-r)*p.W[14])
	short := s / math.Exp(p.W[17]*p.W[18])
	return math.Max(math.Min(long, short), minStability)
}

// nextDifficulty drifts difficulty toward harder on low ratings and easier
// on high ratings, with linear damping and mean reversion toward D0(Easy):
// D'  = D + (10-D) * (-w[6]*(G-3)) / 9
// D'' = w[7]*D0(Easy) + (1-w[7])*D'
func (p *Params) nextDifficulty(d float64, rating Rating) float64 {
	deltaD := -p.W[6] * (float64(rating) - 3)
	dPrime := d + (10-d)*deltaD/9
	d0Easy := p.initDifficulty(Easy, false)
	return clampDifficulty(p.W[7]*d0Easy + (1-p.W[7])*dPrime)
}

func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, minDifficulty), maxDifficulty)
}
