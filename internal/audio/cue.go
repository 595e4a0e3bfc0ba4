// Package audio plays the game's short sound cues.
//
// Cues are synthesised on the fly, so the binary carries no sound files.
// A Sink never blocks the game loop: Play only queues a cue.
package audio

// Cue names a sound event.
type Cue string

const (
	CueExplode Cue = "explode"
	CueLose    Cue = "lose"
	CueMove    Cue = "move"
	CuePew     Cue = "pew"
	CueStartup Cue = "startup"
	CueWin     Cue = "win"
)

// Cues lists every known cue.
var Cues = []Cue{CueExplode, CueLose, CueMove, CuePew, CueStartup, CueWin}

// Sink receives cues from the game loop.
type Sink interface {
	// Play queues a cue and returns immediately.
	Play(c Cue)
	// Wait blocks until queued cues have finished and releases the device.
	// It is called once, at shutdown.
	Wait()
}

// Nop discards every cue. It is used when sound is muted, for remote
// sessions and whenever the audio device cannot be opened.
type Nop struct{}

func (Nop) Play(Cue) {}
func (Nop) Wait()    {}
