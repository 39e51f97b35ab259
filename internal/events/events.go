// Package events holds the fixed chance-event table and the wheel that draws
// from it. Every event carries one or two percentage effects on stock prices;
// the table is balanced in four groups of eight so no stock is structurally
// favored, with a slightly positive expected value overall.
//
// Draws are uniform over the full table, independent, with replacement:
// repeats across consecutive spins are possible and expected.
package events

import (
	"math/rand"

	"github.com/yichenq/gamebank/internal/models"
	"github.com/yichenq/gamebank/internal/store"
)

// Effect is one percentage price move applied to a stock kind.
type Effect struct {
	Kind    models.StockKind `json:"stock_type"`
	Percent float64          `json:"change"`
}

// Event is one entry in the chance table.
type Event struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Effects     []Effect `json:"effects"`
}

func propertyUp(id, description string) Event {
	return Event{ID: id, Description: description, Effects: []Effect{
		{Kind: models.KindProperty, Percent: 3},
		{Kind: models.KindEducation, Percent: -2},
	}}
}

func educationUp(id, description string) Event {
	return Event{ID: id, Description: description, Effects: []Effect{
		{Kind: models.KindEducation, Percent: 3},
		{Kind: models.KindProperty, Percent: -2},
	}}
}

func bothUp(id, description string) Event {
	return Event{ID: id, Description: description, Effects: []Effect{
		{Kind: models.KindProperty, Percent: 1},
		{Kind: models.KindEducation, Percent: 1},
	}}
}

func bothDown(id, description string) Event {
	return Event{ID: id, Description: description, Effects: []Effect{
		{Kind: models.KindEducation, Percent: -1},
		{Kind: models.KindProperty, Percent: -1},
	}}
}

// table is the fixed 32-event chance table: eight events per group.
var table = []Event{
	propertyUp("dormitory_wifi_down", "Dorm WiFi outage sends students flocking to internet cafes"),
	propertyUp("campus_renovation", "Campus renovations everywhere, construction demand surges"),
	propertyUp("internship_housing", "Internship season, short-term rental demand explodes"),
	propertyUp("startup_boom", "Student startup incentives fill every incubator space"),
	propertyUp("milk_tea_craze", "Bubble tea shops expand around campus, shop rents climb"),
	propertyUp("esports_tournament", "College esports league packs the gaming halls"),
	propertyUp("housing_policy", "Graduate housing subsidies lift the property market"),
	propertyUp("campus_expansion", "University expansion plans raise nearby land values"),
	educationUp("final_exam_week", "Finals week, the library overflows and tutoring booms"),
	educationUp("scholarship_policy", "Scholarship reform sparks a study frenzy"),
	educationUp("graduate_job_fair", "Job fair season, career training demand spikes"),
	educationUp("civil_service_exam", "Record civil-service sign-ups pack the prep schools"),
	educationUp("study_group_trend", "Study groups are the new trend, seats are scarce"),
	educationUp("education_reform", "New policy pours support into vocational training"),
	educationUp("campus_5g_upgrade", "Campus-wide 5G drives smart-classroom demand"),
	educationUp("mental_health_awareness", "Mental-health courses and counseling in high demand"),
	bothUp("dating_app_boom", "Campus dating apps boost venues and activities alike"),
	bothUp("new_iphone_release", "New iPhone launch lifts student spending across the board"),
	bothUp("fitness_trend", "Fitness craze benefits gyms and health courses together"),
	bothUp("idol_concert", "Idol group campus tour boosts commerce and culture"),
	bothUp("campus_festival", "Campus festival, shops and activities both thrive"),
	bothUp("summer_vacation_travel", "Summer travel season lifts lodging and courses"),
	bothUp("graduation_season", "Graduation season, rentals and career courses both hot"),
	bothUp("winter_olympics_effect", "Olympics afterglow lifts venues and sports education"),
	bothDown("online_course_boom", "Free online courses undercut everything at once"),
	bothDown("traditional_culture_revival", "Austerity month, spending drops across the board"),
	bothDown("language_learning_trend", "App-based language learning empties the classrooms"),
	bothDown("skill_certification_boom", "Certification glut dulls the whole market"),
	bothDown("research_competition", "Research crunch, nobody leaves the lab to spend"),
	bothDown("art_education_trend", "Budget cuts squeeze art programs and studios"),
	bothDown("entrepreneurship_education", "Startup winter chills courses and co-working alike"),
	bothDown("digital_literacy_push", "Screen-time backlash dampens both sectors"),
}

// Table returns the full chance table in its fixed order.
func Table() []Event {
	out := make([]Event, len(table))
	copy(out, table)
	return out
}

// Wheel draws events uniformly from the table.
type Wheel struct {
	events []Event
	rng    *rand.Rand
}

// NewWheel creates a wheel over the fixed table, seeded for reproducibility.
func NewWheel(seed int64) *Wheel {
	return &Wheel{
		events: table,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Spin draws one event. Independent uniform draws with replacement.
func (w *Wheel) Spin() Event {
	return w.events[w.rng.Intn(len(w.events))]
}

// Apply drives the drawn event's effects into the store as percentage price
// adjustments, in effect order.
func Apply(s *store.Store, ev Event) {
	for _, effect := range ev.Effects {
		s.AdjustPriceByPercent(effect.Kind, effect.Percent)
	}
}
