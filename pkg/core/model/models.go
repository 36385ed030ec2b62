package model

import "time"

// Point is a geographic coordinate in decimal degrees
type Point struct {
	Latitude  float64
	Longitude float64
}

// Caregiver represents a caregiver available for shift assignment
type Caregiver struct {
	ID   int
	Name string

	// Skills holds the skill identifiers this caregiver is qualified for
	Skills []int

	// PrefersNights and PrefersWeekends are self-reported shift preferences.
	// How a scoring policy interprets them (willingness vs. unavailability)
	// is up to the policy; see the scoring package.
	PrefersNights   bool
	PrefersWeekends bool

	Location Point
}

// Shift represents a single patient shift that needs a caregiver
type Shift struct {
	ID        int
	PatientID int

	// StartsAt and EndsAt bound the shift window. Windows are assumed to
	// span less than 24 hours.
	StartsAt time.Time
	EndsAt   time.Time

	// RequiredSkills holds the skill identifiers the patient needs covered
	RequiredSkills []int

	// Location is the patient's location, used as the work site
	Location Point

	// AssignedCaregiverID is nil until a strategy (or the caller) assigns one
	AssignedCaregiverID *int
}

// Weights control the relative contribution of shift-preference match and
// distance penalty in scoring. Each is validated to [0,5] at the boundary;
// the core assumes they are already in range.
type Weights struct {
	Night    float64
	Weekend  float64
	Distance float64
}

// FitResult is the per-(caregiver, shift) scoring outcome. It exists only
// for the duration of a single ranking or assignment call.
type FitResult struct {
	CaregiverID   int
	CaregiverName string

	// Score is the raw policy score; Percentage is the score relative to
	// the best candidate in the same set, 0-100 with one decimal.
	Score      float64
	Percentage float64

	DistanceKm float64

	// MeetsAllNeeds: caregiver skills are a superset of the shift's
	// required skills. MeetsSomeNeeds: at least one skill overlaps.
	MeetsAllNeeds  bool
	MeetsSomeNeeds bool

	// OutOfBounds: distance exceeds the hard threshold.
	// OptimalDistance: distance is under the soft threshold.
	OutOfBounds     bool
	OptimalDistance bool

	NightShiftEligible   bool
	WeekendShiftEligible bool
}

// Assignment maps shift IDs to caregiver IDs. A missing or nil entry means
// the shift is unassigned. Within one assignment run each caregiver appears
// at most once.
type Assignment struct {
	ByShift map[int]*int
}

// NewAssignment creates an empty assignment
func NewAssignment() *Assignment {
	return &Assignment{ByShift: make(map[int]*int)}
}

// Assign records caregiverID for shiftID
func (a *Assignment) Assign(shiftID, caregiverID int) {
	id := caregiverID
	a.ByShift[shiftID] = &id
}

// CaregiverFor returns the assigned caregiver ID for a shift, or nil
func (a *Assignment) CaregiverFor(shiftID int) *int {
	return a.ByShift[shiftID]
}

// AssignedCount returns the number of shifts with a caregiver
func (a *Assignment) AssignedCount() int {
	count := 0
	for _, cg := range a.ByShift {
		if cg != nil {
			count++
		}
	}
	return count
}

// HasSkill returns true if the caregiver holds the given skill
func (c *Caregiver) HasSkill(skill int) bool {
	for _, s := range c.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// MeetsAllNeeds returns true if the caregiver's skills cover every required
// skill of the shift
func (c *Caregiver) MeetsAllNeeds(shift *Shift) bool {
	for _, need := range shift.RequiredSkills {
		if !c.HasSkill(need) {
			return false
		}
	}
	return true
}

// MatchingSkillCount returns how many of the shift's required skills the
// caregiver holds
func (c *Caregiver) MatchingSkillCount(shift *Shift) int {
	count := 0
	for _, need := range shift.RequiredSkills {
		if c.HasSkill(need) {
			count++
		}
	}
	return count
}
