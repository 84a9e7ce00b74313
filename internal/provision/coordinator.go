// Package provision implements account provisioning across the accounts
// service and the role-record services. Creating an account of role patient
// or doctor spans two independently-owned stores with no shared transaction;
// consistency is kept best-effort by a compensating delete of the local
// account whenever the downstream write fails.
package provision

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"hospital-services/internal/metrics"
	"hospital-services/internal/models"
)

// AccountStore is the local-write side of the saga.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id uint) error
	Promote(ctx context.Context, id uint) error
}

// RoleRecordRequest is the payload sent to the downstream role service.
type RoleRecordRequest struct {
	UserID   uint   `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// RoleRecordResponse carries the downstream status and body verbatim, so a
// rejection can be reported to the operator exactly as the downstream
// produced it.
type RoleRecordResponse struct {
	StatusCode int
	Body       json.RawMessage
}

// RoleClient creates the role-specific record in the service that owns it.
// It returns an error only for transport failures and timeouts; a reachable
// service that rejects the request is reported through the response.
type RoleClient interface {
	CreateRoleRecord(ctx context.Context, role models.Role, req RoleRecordRequest) (*RoleRecordResponse, error)
}

// TokenIssuer issues the access credential pair for a completed provisioning.
type TokenIssuer interface {
	Issue(account *models.Account) (accessToken string, refreshToken string, err error)
}

// Status is the terminal state of one provisioning request.
type Status int

const (
	Completed Status = iota
	FailedLocal
	FailedPromotion
	FailedUnreachable
	FailedRejected
)

// String returns the status name used in logs and metrics labels.
func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case FailedLocal:
		return "failed_local"
	case FailedPromotion:
		return "failed_promotion"
	case FailedUnreachable:
		return "failed_unreachable"
	default:
		return "failed_rejected"
	}
}

// Outcome is the result of one provisioning request. Downstream holds the
// role service's response body verbatim: the created record on Completed,
// the rejection payload on FailedRejected.
type Outcome struct {
	Status       Status
	Account      *models.Account
	Downstream   json.RawMessage
	AccessToken  string
	RefreshToken string
	Err          error
}

// Coordinator orchestrates the create-account saga.
type Coordinator struct {
	store    AccountStore
	roles    RoleClient
	tokens   TokenIssuer
	recorder metrics.Recorder
	logger   *log.Logger
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(store AccountStore, roles RoleClient, tokens TokenIssuer, recorder metrics.Recorder, logger *log.Logger) *Coordinator {
	return &Coordinator{
		store:    store,
		roles:    roles,
		tokens:   tokens,
		recorder: recorder,
		logger:   logger,
	}
}

// Provision creates the account locally, then the role record downstream.
// Ordering is strictly local-write-then-remote-write: if the local write
// fails nothing has to be undone, and any failure after it triggers a
// compensating delete before Provision returns. The caller never observes an
// account that outlived a failed downstream write within this request.
func (co *Coordinator) Provision(ctx context.Context, account *models.Account) Outcome {
	outcome := co.provision(ctx, account)
	co.recorder.RecordProvision(outcome.Status.String())
	return outcome
}

func (co *Coordinator) provision(ctx context.Context, account *models.Account) Outcome {
	if err := co.store.Create(ctx, account); err != nil {
		return Outcome{Status: FailedLocal, Err: err}
	}

	// Admin accounts have no role record; promote locally and finish
	// without any downstream call.
	if account.Role == models.RoleAdmin {
		if err := co.store.Promote(ctx, account.ID); err != nil {
			co.compensate(ctx, account.ID)
			return Outcome{Status: FailedPromotion, Err: err}
		}
		account.IsStaff = true
		account.IsSuperuser = true
		return co.complete(ctx, account, nil)
	}

	resp, err := co.roles.CreateRoleRecord(ctx, account.Role, RoleRecordRequest{
		UserID:   account.ID,
		FullName: account.FullName,
		Email:    account.Email,
	})
	if err != nil {
		co.compensate(ctx, account.ID)
		return Outcome{Status: FailedUnreachable, Err: err}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		co.compensate(ctx, account.ID)
		return Outcome{Status: FailedRejected, Downstream: resp.Body}
	}

	return co.complete(ctx, account, resp.Body)
}

func (co *Coordinator) complete(ctx context.Context, account *models.Account, downstream json.RawMessage) Outcome {
	access, refresh, err := co.tokens.Issue(account)
	if err != nil {
		co.compensate(ctx, account.ID)
		return Outcome{Status: FailedLocal, Err: err}
	}

	return Outcome{
		Status:       Completed,
		Account:      account,
		Downstream:   downstream,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}

// compensate deletes the just-created account. There is no durable intent
// record: a crash between the downstream write and this delete leaves an
// orphaned account with no automatic repair. That window is accepted; the
// delete itself always runs synchronously before the response is sent.
func (co *Coordinator) compensate(ctx context.Context, id uint) {
	if err := co.store.Delete(ctx, id); err != nil {
		co.logger.Printf("compensating delete failed for account %d: %v", id, err)
	}
	co.recorder.RecordCompensation()
}
