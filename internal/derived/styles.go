package derived

import "synergysphere/internal/models"

// Style is how a status or priority badge is displayed.
type Style struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

const (
	classGray   = "bg-gray-100 text-gray-800"
	classBlue   = "bg-blue-100 text-blue-800"
	classGreen  = "bg-green-100 text-green-800"
	classYellow = "bg-yellow-100 text-yellow-800"
	classRed    = "bg-red-100 text-red-800"

	// NeutralClass is used for any value outside the lookup tables.
	NeutralClass = classGray
)

var statusStyles = map[models.TaskStatus]Style{
	models.StatusTodo:       {Label: "To Do", Class: classGray},
	models.StatusInProgress: {Label: "In Progress", Class: classBlue},
	models.StatusDone:       {Label: "Done", Class: classGreen},
}

var priorityStyles = map[models.TaskPriority]Style{
	models.PriorityLow:    {Label: "Low", Class: classGreen},
	models.PriorityMedium: {Label: "Medium", Class: classYellow},
	models.PriorityHigh:   {Label: "High", Class: classRed},
}

// StatusStyle maps a status to its badge. Unknown statuses get the neutral
// style labelled with the raw value.
func StatusStyle(s models.TaskStatus) Style {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return Style{Label: string(s), Class: NeutralClass}
}

// PriorityStyle maps a priority to its badge. Unknown priorities get the
// neutral style labelled with the raw value.
func PriorityStyle(p models.TaskPriority) Style {
	if st, ok := priorityStyles[p]; ok {
		return st
	}
	return Style{Label: string(p), Class: NeutralClass}
}
