package audio

// SoundType identifies a synthesized cue
type SoundType int

const (
	SoundClick   SoundType = iota // Neutral button and breaker click
	SoundSuccess                  // Puzzle step accepted
	SoundError                    // Wrong input buzz
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundClick:
		return "click"
	case SoundSuccess:
		return "success"
	case SoundError:
		return "error"
	default:
		return "unknown"
	}
}
