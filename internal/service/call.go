package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/pkg"
	"github.com/rocketscienceinc/celebration-backend/internal/repository"
)

// CallService only records call signaling. Media flows peer to peer.
type CallService interface {
	InitiateCall(ctx context.Context, callerID, calleeID string) (*entity.VideoCall, error)
	AnswerCall(ctx context.Context, id, userID string, accept bool) (*entity.VideoCall, error)
	EndCall(ctx context.Context, id, userID string) (*entity.VideoCall, error)
}

type callRepo interface {
	Get(ctx context.Context, id string) (*entity.VideoCall, error)
	Insert(ctx context.Context, call *entity.VideoCall) error
	Update(ctx context.Context, id string, fields repository.Record) error
}

type callService struct {
	callRepo callRepo
	notifier notifier
}

func NewCallService(callRepo callRepo, notifier notifier) CallService {
	return &callService{
		callRepo: callRepo,
		notifier: notifier,
	}
}

func (that *callService) InitiateCall(ctx context.Context, callerID, calleeID string) (*entity.VideoCall, error) {
	if callerID == "" || calleeID == "" {
		return nil, fmt.Errorf("%w: caller and callee are required", apperror.ErrInvalidArgument)
	}

	if callerID == calleeID {
		return nil, fmt.Errorf("%w: cannot call yourself", apperror.ErrInvalidArgument)
	}

	call := &entity.VideoCall{
		ID:        pkg.GenerateID(),
		CallerID:  callerID,
		CalleeID:  calleeID,
		Status:    entity.CallStatusCalling,
		StartedAt: now(),
	}

	if err := that.callRepo.Insert(ctx, call); err != nil {
		return nil, fmt.Errorf("could not save call: %w", err)
	}

	that.notifier.SendTo(calleeID, entity.Event{
		"type":      entity.EventIncomingCall,
		"call_id":   call.ID,
		"caller_id": callerID,
	})

	return call, nil
}

// AnswerCall lets the callee accept or decline. The caller is told either way.
func (that *callService) AnswerCall(ctx context.Context, id, userID string, accept bool) (*entity.VideoCall, error) {
	call, err := that.getCall(ctx, id)
	if err != nil {
		return nil, err
	}

	if userID != call.CalleeID {
		return nil, fmt.Errorf("%w: only the callee can answer", apperror.ErrForbidden)
	}

	status := entity.CallStatusEnded
	if accept {
		status = entity.CallStatusActive
	}

	if err = that.callRepo.Update(ctx, id, repository.Record{"status": status}); err != nil {
		return nil, fmt.Errorf("could not answer call: %w", err)
	}

	call.Status = status

	that.notifier.SendTo(call.CallerID, entity.Event{
		"type":     entity.EventCallAnswered,
		"call_id":  id,
		"accepted": accept,
	})

	return call, nil
}

func (that *callService) EndCall(ctx context.Context, id, userID string) (*entity.VideoCall, error) {
	call, err := that.getCall(ctx, id)
	if err != nil {
		return nil, err
	}

	if !call.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: user %s is not in the call", apperror.ErrForbidden, userID)
	}

	endedAt := now()
	duration := int(endedAt.Sub(call.StartedAt) / time.Second)

	err = that.callRepo.Update(ctx, id, repository.Record{
		"status":   entity.CallStatusEnded,
		"ended_at": endedAt,
		"duration": duration,
	})
	if err != nil {
		return nil, fmt.Errorf("could not end call: %w", err)
	}

	call.Status = entity.CallStatusEnded
	call.EndedAt = &endedAt
	call.Duration = &duration

	that.notifier.SendTo(call.Other(userID), entity.Event{
		"type":    entity.EventCallEnded,
		"call_id": id,
	})

	return call, nil
}

func (that *callService) getCall(ctx context.Context, id string) (*entity.VideoCall, error) {
	call, err := that.callRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get call: %w", err)
	}

	return call, nil
}
