package tone

import "time"

// Note frequencies in Hz, equal temperament, A4 = 440 Hz.
const (
	NoteC4 uint32 = 262
	NoteD4 uint32 = 294
	NoteE4 uint32 = 330
	NoteF4 uint32 = 349
	NoteG4 uint32 = 392
	NoteA4 uint32 = 440
	NoteB4 uint32 = 494
	NoteC5 uint32 = 523
	NoteD5 uint32 = 587
	NoteE5 uint32 = 659
	NoteF5 uint32 = 698
	NoteG5 uint32 = 784
	NoteA5 uint32 = 880
	NoteB5 uint32 = 988
)

// Chime is the short startup jingle the demo app plays.
func Chime() []Tone {
	return []Tone{
		{Frequency: NoteC5, Duration: 120 * time.Millisecond},
		{Frequency: NoteE5, Duration: 120 * time.Millisecond},
		{Frequency: NoteG5, Duration: 180 * time.Millisecond},
		{Frequency: 0, Duration: 60 * time.Millisecond},
		{Frequency: NoteC5, Duration: 240 * time.Millisecond},
	}
}
