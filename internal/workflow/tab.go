package workflow

// Tab identifies one of the four workflow tabs.
type Tab int

const (
	TabUpload Tab = iota
	TabProfiling
	TabModeling
	TabDownload
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabUpload, TabProfiling, TabModeling, TabDownload}

func (t Tab) String() string {
	switch t {
	case TabUpload:
		return "upload"
	case TabProfiling:
		return "profiling"
	case TabModeling:
		return "modeling"
	case TabDownload:
		return "download"
	default:
		return ""
	}
}

// Title returns the label shown in the tab bar.
func (t Tab) Title() string {
	switch t {
	case TabUpload:
		return "Upload"
	case TabProfiling:
		return "Profiling"
	case TabModeling:
		return "Modeling"
	case TabDownload:
		return "Download"
	default:
		return ""
	}
}

// Valid reports whether t is one of the four known tabs.
func (t Tab) Valid() bool {
	return t >= TabUpload && t <= TabDownload
}
