package models

type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "DRAFT"
	ProposalStatusOpen     ProposalStatus = "OPEN"
	ProposalStatusClosed   ProposalStatus = "CLOSED"
	ProposalStatusArchived ProposalStatus = "ARCHIVED"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	// TaskStatusArchived is a soft-delete sentinel outside the progression.
	TaskStatusArchived TaskStatus = "ARCHIVED"
)

// ProposalStatuses lists the progression in order.
var ProposalStatuses = []ProposalStatus{
	ProposalStatusDraft,
	ProposalStatusOpen,
	ProposalStatusClosed,
	ProposalStatusArchived,
}

// TaskStatuses lists the progression in order, followed by the archive sentinel.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusDone,
	TaskStatusArchived,
}

var proposalTransitions = map[ProposalStatus]ProposalStatus{
	ProposalStatusDraft:  ProposalStatusOpen,
	ProposalStatusOpen:   ProposalStatusClosed,
	ProposalStatusClosed: ProposalStatusArchived,
}

var taskTransitions = map[TaskStatus]TaskStatus{
	TaskStatusTodo:       TaskStatusInProgress,
	TaskStatusInProgress: TaskStatusDone,
}

var actionLabels = map[string]string{
	string(ProposalStatusDraft):  "Open",
	string(ProposalStatusOpen):   "Close",
	string(ProposalStatusClosed): "Archive",
	string(TaskStatusTodo):       "Start",
	string(TaskStatusInProgress): "Complete",
}

var statusLabels = map[string]string{
	"DRAFT":       "Draft",
	"OPEN":        "Open",
	"CLOSED":      "Closed",
	"ARCHIVED":    "Archived",
	"TODO":        "To Do",
	"IN_PROGRESS": "In Progress",
	"DONE":        "Done",
}

// NextProposalStatus returns the single allowed successor of current.
// ok is false for terminal or unknown statuses.
func NextProposalStatus(current ProposalStatus) (next ProposalStatus, ok bool) {
	next, ok = proposalTransitions[current]
	return next, ok
}

// NextTaskStatus returns the single allowed successor of current.
// DONE and the ARCHIVED sentinel are terminal.
func NextTaskStatus(current TaskStatus) (next TaskStatus, ok bool) {
	next, ok = taskTransitions[current]
	return next, ok
}

// ActionLabel returns the verb shown for the forward transition out of status.
func ActionLabel(status string) (string, bool) {
	label, ok := actionLabels[status]
	return label, ok
}

// StatusLabel returns a human-readable label, or the status itself when unknown.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// ParseProposalStatus normalizes a stored status, defaulting to DRAFT.
func ParseProposalStatus(raw string) ProposalStatus {
	for _, s := range ProposalStatuses {
		if string(s) == raw {
			return s
		}
	}
	return ProposalStatusDraft
}

// ParseTaskStatus normalizes a stored status, defaulting to TODO. The ARCHIVED
// sentinel is preserved so archived tasks stay archived after mapping.
func ParseTaskStatus(raw string) TaskStatus {
	for _, s := range TaskStatuses {
		if string(s) == raw {
			return s
		}
	}
	return TaskStatusTodo
}

// IsValid reports whether s is a known proposal status.
func (s ProposalStatus) IsValid() bool {
	for _, known := range ProposalStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known task status, including the sentinel.
func (s TaskStatus) IsValid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}
