package document

import (
	"sort"

	"github.com/jhoicas/Documentos-api/internal/domain"
)

// Status estado de un documento. Cada tipo usa su propio subconjunto.
type Status string

// Estados de cotización.
const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusSent      Status = "sent"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusRevised   Status = "revised"
)

// Estados de factura, remisión y traslado.
const (
	StatusUnpaid    Status = "unpaid"
	StatusPaid      Status = "paid"
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusCompleted Status = "completed"
)

// Action acción que dispara una transición.
type Action string

const (
	ActionSubmit   Action = "submit"
	ActionApprove  Action = "approve"
	ActionSend     Action = "send"
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionRevise   Action = "revise"
	ActionPay      Action = "pay"
	ActionDeliver  Action = "deliver"
	ActionComplete Action = "complete"
)

type edge struct {
	from   Status
	action Action
}

// graphs contiene las aristas permitidas por tipo. Un estado sin aristas salientes es terminal.
var graphs = map[Type]map[edge]Status{
	TypeQuotation: {
		{StatusDraft, ActionSubmit}:      StatusSubmitted,
		{StatusRevised, ActionSubmit}:    StatusSubmitted,
		{StatusSubmitted, ActionApprove}: StatusApproved,
		{StatusApproved, ActionSend}:     StatusSent,
		{StatusSent, ActionAccept}:       StatusAccepted,
		{StatusSent, ActionReject}:       StatusRejected,
		{StatusDraft, ActionRevise}:      StatusRevised,
		{StatusSubmitted, ActionRevise}:  StatusRevised,
	},
	TypeInvoice: {
		{StatusUnpaid, ActionPay}: StatusPaid,
	},
	TypeDeliveryNote: {
		{StatusPending, ActionDeliver}: StatusDelivered,
	},
	TypeTransfer: {
		{StatusPending, ActionComplete}: StatusCompleted,
	},
}

var initial = map[Type]Status{
	TypeQuotation:    StatusDraft,
	TypeInvoice:      StatusUnpaid,
	TypeDeliveryNote: StatusPending,
	TypeTransfer:     StatusPending,
}

// InitialStatus estado con el que se crea un documento del tipo t.
func InitialStatus(t Type) Status { return initial[t] }

// IsTerminal indica si s no tiene transiciones salientes para t.
func IsTerminal(t Type, s Status) bool {
	for e := range graphs[t] {
		if e.from == s {
			return false
		}
	}
	return true
}

// Transition calcula el nuevo estado. Es una función pura de sus argumentos.
// approve exige actorID == approverID y responde ErrForbidden sin mirar el estado;
// cualquier otra combinación no definida en el grafo es ErrInvalidTransition.
func Transition(t Type, current Status, action Action, actorID, approverID string) (Status, error) {
	graph, ok := graphs[t]
	if !ok {
		return "", domain.ErrInvalidInput
	}
	if t == TypeQuotation && action == ActionApprove {
		if approverID == "" || actorID != approverID {
			return "", domain.ErrForbidden
		}
	}
	next, ok := graph[edge{from: current, action: action}]
	if !ok {
		return "", domain.ErrInvalidTransition
	}
	return next, nil
}

// Actions acciones que admite el tipo t, en orden alfabético.
func Actions(t Type) []Action {
	seen := make(map[Action]struct{})
	out := make([]Action, 0, len(graphs[t]))
	for e := range graphs[t] {
		if _, ok := seen[e.action]; ok {
			continue
		}
		seen[e.action] = struct{}{}
		out = append(out, e.action)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
