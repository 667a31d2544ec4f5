package models

// Stage is the pipeline step a blueprint belongs to.
type Stage string

const (
	StageBackup       Stage = "backup"
	StageFiltering    Stage = "filtering"
	StageRetouching   Stage = "retouching"
	StageClientReview Stage = "client review"
	StageAlbum        Stage = "album"
	StageDelivery     Stage = "delivery"
)

// Heading returns the stage name as shown above a group of tasks.
func (s Stage) Heading() string {
	switch s {
	case StageBackup:
		return "Backup"
	case StageFiltering:
		return "Filtering"
	case StageRetouching:
		return "Retouching"
	case StageClientReview:
		return "Client review"
	case StageAlbum:
		return "Album"
	case StageDelivery:
		return "Delivery"
	default:
		return "Other"
	}
}

// Blueprint describes one task of a template.
type Blueprint struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Stage       Stage  `json:"stage" yaml:"stage"`
	HasDate     bool   `json:"hasDate" yaml:"hasDate"`
	ExtraChoice bool   `json:"extraChoice" yaml:"extraChoice"`
}

// Template is the ordered task list for one (project type, delivery mode) pair.
type Template struct {
	Key          string       `json:"key" yaml:"key"`
	ProjectType  ProjectType  `json:"projectType" yaml:"projectType"`
	DeliveryMode DeliveryMode `json:"deliveryMode" yaml:"deliveryMode"`
	Tasks        []Blueprint  `json:"tasks" yaml:"tasks"`
}

// Default pair used whenever a stored job names an unknown combination.
const (
	DefaultProjectType  = ProjectEvent
	DefaultDeliveryMode = DeliveryDigitalPlusAlbum
)

var (
	bpBackupRaw       = Blueprint{ID: "backup_raw", Title: "Back up RAW files", Stage: StageBackup, HasDate: true}
	bpBackupCloud     = Blueprint{ID: "backup_cloud", Title: "Upload backup to cloud", Stage: StageBackup}
	bpCull            = Blueprint{ID: "cull", Title: "Cull and filter photos", Stage: StageFiltering, HasDate: true}
	bpColorGrade      = Blueprint{ID: "color_grade", Title: "Color correction", Stage: StageRetouching}
	bpRetouch         = Blueprint{ID: "retouch", Title: "Retouch highlights", Stage: StageRetouching, HasDate: true}
	bpPreviewGallery  = Blueprint{ID: "preview_gallery", Title: "Publish preview gallery", Stage: StageClientReview, HasDate: true}
	bpClientSelection = Blueprint{ID: "client_selection", Title: "Client photo selection", Stage: StageClientReview, HasDate: true, ExtraChoice: true}
	bpFinalRetouch    = Blueprint{ID: "final_retouch", Title: "Final retouch of selection", Stage: StageRetouching}
	bpAlbumLayout     = Blueprint{ID: "album_layout", Title: "Album layout draft", Stage: StageAlbum, HasDate: true}
	bpAlbumReview     = Blueprint{ID: "album_review", Title: "Client album approval", Stage: StageAlbum, HasDate: true, ExtraChoice: true}
	bpAlbumOrder      = Blueprint{ID: "album_order", Title: "Send album to bindery", Stage: StageAlbum, HasDate: true}
	bpAlbumReceived   = Blueprint{ID: "album_received", Title: "Album back from bindery", Stage: StageAlbum, HasDate: true}
	bpDigitalDelivery = Blueprint{ID: "digital_delivery", Title: "Deliver digital files", Stage: StageDelivery, HasDate: true}
	bpAlbumDelivery   = Blueprint{ID: "album_delivery", Title: "Hand over album", Stage: StageDelivery, HasDate: true, ExtraChoice: true}
	bpFeedback        = Blueprint{ID: "feedback", Title: "Request client feedback", Stage: StageDelivery}
	bpArchive         = Blueprint{ID: "archive", Title: "Archive project", Stage: StageDelivery}
)

// templates is authored data; order inside each list is the checklist order.
var templates = map[string][]Blueprint{
	TemplateKey(ProjectEvent, DeliveryDigitalOnly): {
		bpBackupRaw, bpBackupCloud, bpCull, bpColorGrade, bpRetouch,
		bpPreviewGallery, bpClientSelection, bpFinalRetouch,
		bpDigitalDelivery, bpFeedback, bpArchive,
	},
	TemplateKey(ProjectEvent, DeliveryDigitalPlusAlbum): {
		bpBackupRaw, bpBackupCloud, bpCull, bpColorGrade, bpRetouch,
		bpPreviewGallery, bpClientSelection, bpFinalRetouch,
		bpAlbumLayout, bpAlbumReview, bpAlbumOrder, bpAlbumReceived,
		bpDigitalDelivery, bpAlbumDelivery, bpFeedback, bpArchive,
	},
	TemplateKey(ProjectPortraitSession, DeliveryDigitalOnly): {
		bpBackupRaw, bpCull, bpRetouch, bpClientSelection, bpFinalRetouch,
		bpDigitalDelivery, bpFeedback, bpArchive,
	},
	TemplateKey(ProjectPortraitSession, DeliveryDigitalPlusAlbum): {
		bpBackupRaw, bpCull, bpRetouch, bpClientSelection, bpFinalRetouch,
		bpAlbumLayout, bpAlbumReview, bpAlbumOrder, bpAlbumReceived,
		bpDigitalDelivery, bpAlbumDelivery, bpFeedback, bpArchive,
	},
}

// TemplateKey pairs the two template axes into a lookup key.
func TemplateKey(p ProjectType, d DeliveryMode) string {
	return string(p) + "/" + string(d)
}

// ResolvePair maps any pair onto one that has a template, falling back to
// the default pair when the combination is unknown.
func ResolvePair(p ProjectType, d DeliveryMode) (ProjectType, DeliveryMode) {
	if _, ok := templates[TemplateKey(p, d)]; ok {
		return p, d
	}
	return DefaultProjectType, DefaultDeliveryMode
}

// TemplateFor returns a copy of the blueprints for the pair, or of the
// default template when the pair is unknown.
func TemplateFor(p ProjectType, d DeliveryMode) []Blueprint {
	p, d = ResolvePair(p, d)
	src := templates[TemplateKey(p, d)]
	out := make([]Blueprint, len(src))
	copy(out, src)
	return out
}

// Blueprint returns the template entry behind the job's task taskID.
func (j Job) Blueprint(taskID string) (Blueprint, bool) {
	for _, bp := range TemplateFor(j.ProjectType, j.DeliveryMode) {
		if bp.ID == taskID {
			return bp, true
		}
	}
	return Blueprint{}, false
}

// Templates returns all four templates in a stable order.
func Templates() []Template {
	var out []Template
	for _, p := range []ProjectType{ProjectEvent, ProjectPortraitSession} {
		for _, d := range []DeliveryMode{DeliveryDigitalOnly, DeliveryDigitalPlusAlbum} {
			out = append(out, Template{
				Key:          TemplateKey(p, d),
				ProjectType:  p,
				DeliveryMode: d,
				Tasks:        TemplateFor(p, d),
			})
		}
	}
	return out
}

// NewTasks instantiates blueprints with default task state.
func NewTasks(blueprints []Blueprint) []Task {
	tasks := make([]Task, len(blueprints))
	for i, bp := range blueprints {
		tasks[i] = newTask(bp)
	}
	return tasks
}

func newTask(bp Blueprint) Task {
	t := Task{ID: bp.ID, Title: bp.Title}
	if bp.ExtraChoice {
		c := ChoiceNone
		t.Choice = &c
	}
	return t
}

// ReconcileTasks rebuilds a task list so it matches blueprints exactly, in
// blueprint order. Progress recorded on a task carries over when the same ID
// exists in existing; tasks whose ID is not in blueprints are dropped along
// with their progress.
func ReconcileTasks(blueprints []Blueprint, existing []Task) []Task {
	byID := make(map[string]Task, len(existing))
	for _, t := range existing {
		if _, dup := byID[t.ID]; !dup {
			byID[t.ID] = t
		}
	}

	tasks := make([]Task, len(blueprints))
	for i, bp := range blueprints {
		t := newTask(bp)
		if old, ok := byID[bp.ID]; ok {
			t.Done = old.Done
			t.Notes = old.Notes
			if bp.HasDate {
				t.Date = old.Date
			}
			if bp.ExtraChoice && old.Choice != nil && old.Choice.Valid() {
				c := *old.Choice
				t.Choice = &c
			}
		}
		tasks[i] = t
	}
	return tasks
}
