package models

// Mood is the closed set of emotional-state labels the free-text path
// resolves to. Labels are lowercase Indonesian words because the user
// input vocabulary is Indonesian; descriptions in the catalog stay English.
type Mood string

const (
	MoodBosan     Mood = "bosan"
	MoodSedih     Mood = "sedih"
	MoodSenang    Mood = "senang"
	MoodSemangat  Mood = "semangat"
	MoodTakut     Mood = "takut"
	MoodPenasaran Mood = "penasaran"
	MoodMarah     Mood = "marah"
	MoodCinta     Mood = "cinta"
	MoodTegang    Mood = "tegang"
)

// AllMoods lists every valid mood in keyword-priority order. The mood
// resolver iterates this order and the first keyword hit wins, so the
// order is part of the resolution contract.
var AllMoods = []Mood{
	MoodBosan,
	MoodSedih,
	MoodSenang,
	MoodSemangat,
	MoodTakut,
	MoodPenasaran,
	MoodMarah,
	MoodCinta,
	MoodTegang,
}

// IsValid reports whether m is one of the nine known moods.
func (m Mood) IsValid() bool {
	for _, known := range AllMoods {
		if m == known {
			return true
		}
	}
	return false
}

// QuestionnaireMood is the mood vocabulary of the preference
// questionnaire. It overlaps the free-text vocabulary but is a distinct
// label set (capitalized, five labels) with its own genre mapping, and
// the two are deliberately never unified.
type QuestionnaireMood string

const (
	QMoodSenang    QuestionnaireMood = "Senang"
	QMoodSedih     QuestionnaireMood = "Sedih"
	QMoodBosan     QuestionnaireMood = "Bosan"
	QMoodSemangat  QuestionnaireMood = "Semangat"
	QMoodPenasaran QuestionnaireMood = "Penasaran"
)

// Purpose describes who the user plans to watch with.
type Purpose string

const (
	PurposeAlone   Purpose = "Nonton sendirian"
	PurposeFamily  Purpose = "Keluarga"
	PurposePartner Purpose = "Pasangan"
	PurposeFriends Purpose = "Teman"
)
