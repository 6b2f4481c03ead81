package manifest

const DefaultPath = "schedules.yaml"

// Manifest is a schedule file read from disk.
type Manifest struct {
	Path string

	Raw  []byte
	Spec Spec
}

// Spec is the on-disk schedules.yaml structure.
//
// Note: an empty timezone or pause status keeps the job's current value when
// the manifest is applied.
type Spec struct {
	Schema    string  `yaml:"$schema,omitempty"`
	Schedules []Entry `yaml:"schedules"`
}

type Entry struct {
	Job         string `yaml:"job"`
	Cron        string `yaml:"cron"`
	Timezone    string `yaml:"timezone,omitempty"`
	PauseStatus string `yaml:"pause_status,omitempty"`
}
