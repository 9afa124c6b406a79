package model

// Version of vrsetup, injected here rather than via ldflags so that
// `vrsetup --version` works from a plain `go install` too.
const Version = "1.1.0"

// AppFile is the application entry point staged into the install root.
// The installer invokes it but never inspects it; its behavior (recording,
// transcription, usage logging) is entirely the application's business.
const (
	AppFile      = "voice_recorder.py"
	ManifestFile = "requirements.txt"
	SecretsFile  = ".env"
	EnvDir       = "venv"
	UsageLogFile = "voice_recorder_usage.jsonl"
	LauncherName = "voice-recorder"
)

// Layout describes where everything lives on this machine.
type Layout struct {
	SourceDir   string `json:"source_dir"`   // where voice_recorder.py and requirements.txt come from
	InstallRoot string `json:"install_root"` // ~/.voice-recorder
	EnvDir      string `json:"env_dir"`      // <root>/venv
	BinDir      string `json:"bin_dir"`      // ~/.local/bin (POSIX) or the install root (Windows)
}

// Outcome classifies how a single workflow step ended.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeSkipped // optional input missing, warned and moved on
	OutcomeFailed
)

// StepResult is one entry in the install/uninstall transcript.
type StepResult struct {
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"` // path created, file touched, warning text...
}

// Summary is the final record of a run, rendered styled or as JSON.
type Summary struct {
	Action       string       `json:"action"` // "install" or "uninstall"
	Layout       Layout       `json:"layout"`
	Steps        []StepResult `json:"steps"`
	LauncherPath string       `json:"launcher_path,omitempty"`
	PathTouched  []string     `json:"path_touched,omitempty"` // rc files (or registry key) the registrar modified
	NeedNewShell bool         `json:"need_new_shell"`         // PATH changed, current terminal won't see it
	Warnings     []string     `json:"warnings,omitempty"`
}

// Warn collects the detail text of every skipped step.
func (s *Summary) Warn(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// MarshalText makes Outcome readable in the --json output.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
