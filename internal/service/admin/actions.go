package admin

import (
	"context"
	"fmt"
	"strconv"

	"ruru-backoffice/internal/apperr"
	"ruru-backoffice/internal/audit"
	"ruru-backoffice/internal/domain"
)

// ActionKind names a button in a detail modal.
type ActionKind string

// Detail modal actions.
const (
	ActionApproveDocument ActionKind = "approve-document"
	ActionRejectDocument  ActionKind = "reject-document"
	ActionActivate        ActionKind = "activate"
	ActionDeactivate      ActionKind = "deactivate"
)

// Action is one available action on an entity.
type Action struct {
	Kind       ActionKind
	Label      string
	DocumentID int64
}

// CourierActions lists what an admin may do with c. A pending courier only
// gets approve or reject per pending document. An approved courier can be
// deactivated, or reactivated once its account is off. A rejected courier
// can be activated.
func CourierActions(c domain.Courier) []Action {
	var out []Action
	switch c.Status() {
	case domain.CourierPending:
		for _, d := range c.Documents {
			if d.Status != domain.DocumentPending {
				continue
			}
			out = append(out,
				Action{Kind: ActionApproveDocument, Label: "Approve " + d.Type, DocumentID: d.ID},
				Action{Kind: ActionRejectDocument, Label: "Reject " + d.Type, DocumentID: d.ID},
			)
		}
	case domain.CourierApproved:
		if c.User != nil {
			out = append(out, activation(c.User.IsActive))
		}
	case domain.CourierRejected:
		if c.User != nil {
			out = append(out, activation(false))
		}
	}
	return out
}

// PersonActions lists what an admin may do with a customer or rider.
func PersonActions(p domain.Person) []Action {
	return []Action{activation(p.IsActive)}
}

func activation(active bool) Action {
	if active {
		return Action{Kind: ActionDeactivate, Label: "Deactivate"}
	}
	return Action{Kind: ActionActivate, Label: "Activate"}
}

func allowed(actions []Action, kind ActionKind, docID int64) bool {
	for _, a := range actions {
		if a.Kind == kind && a.DocumentID == docID {
			return true
		}
	}
	return false
}

// VerifyDocument returns a mutation that approves or rejects one document of
// a courier. Sibling documents keep their status.
func (s *Service) VerifyDocument(api API, actor domain.User, docID int64, approve bool, comment string) func(context.Context, domain.Courier) (domain.Courier, error) {
	kind, action, status := ActionRejectDocument, audit.ActionDocumentReject, domain.DocumentRejected
	if approve {
		kind, action, status = ActionApproveDocument, audit.ActionDocumentApprove, domain.DocumentApproved
	}
	return func(ctx context.Context, c domain.Courier) (domain.Courier, error) {
		doc, ok := c.Document(docID)
		if !ok {
			return domain.Courier{}, fmt.Errorf("courier %d document %d: %w", c.ID, docID, apperr.NotFound)
		}
		if !allowed(CourierActions(c), kind, docID) {
			return domain.Courier{}, fmt.Errorf("document %d is %s: %w", docID, doc.Status, apperr.Conflict)
		}

		confirmed, err := api.UpdateDocumentStatus(ctx, docID, approve, comment)
		s.record(ctx, actor, action, Couriers, c.Key(), "document "+strconv.FormatInt(docID, 10), err)
		if err != nil {
			return domain.Courier{}, err
		}

		doc.Status = status
		doc.Comment = comment
		if confirmed != nil && confirmed.ID == docID {
			if confirmed.Status != "" {
				doc.Status = confirmed.Status
			}
			if confirmed.URL != "" {
				doc.URL = confirmed.URL
			}
			if confirmed.Comment != "" {
				doc.Comment = confirmed.Comment
			}
		}
		return c.WithDocument(doc), nil
	}
}

// SetCourierActive returns a mutation that activates or deactivates a courier's account.
func (s *Service) SetCourierActive(api API, actor domain.User, active bool) func(context.Context, domain.Courier) (domain.Courier, error) {
	return func(ctx context.Context, c domain.Courier) (domain.Courier, error) {
		if c.User == nil {
			return domain.Courier{}, fmt.Errorf("courier %d has no user account: %w", c.ID, apperr.NotFound)
		}
		if c.User.IsActive == active {
			return c, nil
		}
		if kind := activation(!active).Kind; !allowed(CourierActions(c), kind, 0) {
			return domain.Courier{}, fmt.Errorf("courier %d is %s: %w", c.ID, c.Status(), apperr.Conflict)
		}
		err := api.SetUserActive(ctx, c.User.ID, active)
		s.record(ctx, actor, activationAction(active), Couriers, c.Key(), "user "+idString(c.User.ID), err)
		if err != nil {
			return domain.Courier{}, err
		}
		return c.WithActive(active), nil
	}
}

// SetCustomerActive returns a mutation that activates or deactivates a customer.
func (s *Service) SetCustomerActive(api API, actor domain.User, active bool) func(context.Context, domain.Customer) (domain.Customer, error) {
	return func(ctx context.Context, c domain.Customer) (domain.Customer, error) {
		if c.IsActive == active {
			return c, nil
		}
		err := api.SetUserActive(ctx, c.ID, active)
		s.record(ctx, actor, activationAction(active), Customers, c.Key(), "", err)
		if err != nil {
			return domain.Customer{}, err
		}
		return c.WithActive(active), nil
	}
}

// SetRiderActive returns a mutation that activates or deactivates a rider.
func (s *Service) SetRiderActive(api API, actor domain.User, active bool) func(context.Context, domain.Rider) (domain.Rider, error) {
	return func(ctx context.Context, r domain.Rider) (domain.Rider, error) {
		if r.IsActive == active {
			return r, nil
		}
		err := api.SetUserActive(ctx, r.ID, active)
		s.record(ctx, actor, activationAction(active), Riders, r.Key(), "", err)
		if err != nil {
			return domain.Rider{}, err
		}
		return r.WithActive(active), nil
	}
}

func activationAction(active bool) audit.Action {
	if active {
		return audit.ActionUserActivate
	}
	return audit.ActionUserDeactivate
}
