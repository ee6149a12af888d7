package starboard

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a tap script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Index  int     `json:"index,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// tapScript is the top-level JSON structure for a tap script.
type tapScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected taps and mode changes across frames for
// automated interaction testing and demos. Attach to a Panel via
// SetScriptRunner.
//
// Supported actions: "touch", "pointer", "marker", "edit" (toggle the edit
// flag), "reset", and "wait" (idle for Frames frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTapScript parses a JSON tap script and returns a ScriptRunner ready to
// be attached to a Panel.
func LoadTapScript(jsonData []byte) (*ScriptRunner, error) {
	var script tapScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse tap script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse tap script: no steps")
	}
	for i, step := range script.Steps {
		switch step.Action {
		case "touch", "pointer", "marker", "edit", "reset", "wait":
		default:
			return nil, fmt.Errorf("parse tap script: step %d: unknown action %q", i, step.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a runner to the panel. The runner advances one
// step per Update, ahead of real input.
func (p *Panel) SetScriptRunner(runner *ScriptRunner) {
	p.script = runner
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(p *Panel) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	s := r.steps[r.cursor]
	r.cursor++

	switch s.Action {
	case "touch":
		p.InjectTouch(s.X, s.Y)
	case "pointer":
		p.InjectPointerTap(s.X, s.Y)
	case "marker":
		p.InjectMarkerTap(s.Index)
	case "edit":
		p.ctrl.ToggleEditing()
	case "reset":
		p.ctrl.Reset()
	case "wait":
		if s.Frames > 1 {
			r.waitCount = s.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(p.injectQueue) <= 1 {
		r.done = true
	}
}
