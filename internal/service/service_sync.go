// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sama64/nerdeala25/internal/adapter"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/metrics"
	"github.com/sama64/nerdeala25/internal/store"
	"github.com/sama64/nerdeala25/models"
)

type nopRecorder struct{}

func (nopRecorder) PassDone(string, string, time.Duration) {}
func (nopRecorder) CourseDone(string, string)              {}
func (nopRecorder) NotificationDone(string, string)        {}

type syncService struct {
	classroom   adapter.ClassroomAdapter
	credentials CredentialProvider
	dispatcher  NotificationDispatcher
	tx          store.Transactor
	etags       store.ETagRepository
	recorder    Recorder

	participants *participantReconciler
	assignments  *assignmentReconciler
	submissions  *submissionReconciler

	// running serialises passes of every kind.
	running sync.Mutex

	mu   sync.RWMutex
	last map[models.PassKind]models.SyncResult

	now    func() time.Time
	logger *logger.Logger
}

// NewSyncService builds the sync orchestrator. etags must be bound to the
// connection pool: validators are read before a course transaction begins.
func NewSyncService(
	classroom adapter.ClassroomAdapter,
	credentials CredentialProvider,
	dispatcher NotificationDispatcher,
	tx store.Transactor,
	etags store.ETagRepository,
	recorder Recorder,
	logger *logger.Logger,
) SyncService {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &syncService{
		classroom:    classroom,
		credentials:  credentials,
		dispatcher:   dispatcher,
		tx:           tx,
		etags:        etags,
		recorder:     recorder,
		participants: &participantReconciler{classroom: classroom},
		assignments:  &assignmentReconciler{classroom: classroom},
		submissions:  &submissionReconciler{classroom: classroom},
		last:         make(map[models.PassKind]models.SyncResult),
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
}

func (s *syncService) RunPass(ctx context.Context, kind models.PassKind) (models.SyncResult, error) {
	if kind != models.PassFull && kind != models.PassDelta {
		return models.SyncResult{}, fmt.Errorf("%w: %q", ErrUnknownPass, kind)
	}

	if !s.running.TryLock() {
		s.recorder.PassDone(string(kind), metrics.OutcomeSkipped, 0)
		return models.SyncResult{}, ErrPassInProgress
	}
	defer s.running.Unlock()

	log := s.logger.Child("pass", string(kind))
	ctx = log.WithContext(ctx)

	result := models.SyncResult{Pass: kind, StartedAt: s.now()}
	err := s.run(ctx, kind, &result)
	result.FinishedAt = s.now()

	outcome := metrics.OutcomeSuccess
	if err != nil || result.FailedCourses > 0 {
		outcome = metrics.OutcomeFailure
	}
	s.recorder.PassDone(string(kind), outcome, result.FinishedAt.Sub(result.StartedAt))

	if err != nil {
		log.Err(err).Msg("sync pass failed")
		return result, err
	}

	s.mu.Lock()
	s.last[kind] = result
	s.mu.Unlock()

	log.Info().
		Int("courses", result.Courses).
		Int("participants", result.Participants).
		Int("assignments", result.Assignments).
		Int("submissions", result.Submissions).
		Int("changed", result.Changed).
		Int("failed_courses", result.FailedCourses).
		Dur("took", result.FinishedAt.Sub(result.StartedAt)).
		Msg("sync pass finished")

	return result, nil
}

func (s *syncService) LastResults() []models.SyncResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.SyncResult, 0, len(s.last))
	for _, kind := range []models.PassKind{models.PassFull, models.PassDelta} {
		if r, ok := s.last[kind]; ok {
			results = append(results, r)
		}
	}
	return results
}

func (s *syncService) run(ctx context.Context, kind models.PassKind, result *models.SyncResult) error {
	log := logger.FromContext(ctx)

	creds, err := s.credentials.Credentials(ctx)
	if err != nil {
		return fmt.Errorf("obtain credentials: %w", err)
	}

	// A course listed for several identities is reconciled once. A course
	// that failed under one identity may still commit under a later one, so
	// failures are counted only for courses that never committed.
	done := make(map[string]struct{})
	failed := make(map[string]struct{})
	defer func() {
		result.FailedCourses += len(failed)
		for range failed {
			s.recorder.CourseDone(string(kind), metrics.OutcomeFailure)
		}
	}()

	for _, cred := range creds {
		credLog := log.Child("identity", strconv.FormatInt(cred.UserID, 10))
		credCtx := credLog.WithContext(ctx)

		courses, err := s.classroom.ListActiveCourses(credCtx, cred.Token)
		if err != nil {
			credLog.Err(err).Msg("failed to list active courses")
			continue
		}

		for _, rc := range courses {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, ok := done[rc.ID]; ok {
				continue
			}

			courseLog := credLog.Child("course_id", rc.ID)
			courseCtx := courseLog.WithContext(credCtx)

			var (
				res models.SyncResult
				err error
			)
			if kind == models.PassFull {
				res, err = s.fullCourse(courseCtx, cred, rc)
			} else {
				res, err = s.deltaCourse(courseCtx, cred, rc)
			}
			if err != nil {
				courseLog.Err(err).Msg("course sync failed, changes rolled back")
				failed[rc.ID] = struct{}{}
				continue
			}

			done[rc.ID] = struct{}{}
			delete(failed, rc.ID)
			result.Add(res)
			s.recorder.CourseDone(string(kind), metrics.OutcomeSuccess)
		}
	}

	return nil
}

// fullCourse registers the course and converges its rosters and coursework
// in one transaction. New assignments are announced after commit.
func (s *syncService) fullCourse(ctx context.Context, cred models.Credential, rc models.RemoteCourse) (models.SyncResult, error) {
	rosters, err := s.participants.fetch(ctx, s.etags, cred.Token, rc.ID)
	if err != nil {
		return models.SyncResult{}, err
	}
	coursework, err := s.assignments.fetch(ctx, s.etags, cred.Token, rc.ID)
	if err != nil {
		return models.SyncResult{}, err
	}

	var (
		res      models.SyncResult
		created  []models.Assignment
		students []models.Recipient
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos *store.Repositories) error {
		res, created, students = models.SyncResult{}, nil, nil

		if err := ensureCourse(ctx, repos.Courses, rc); err != nil {
			return err
		}

		n, err := s.participants.apply(ctx, repos, rc.ID, rosters)
		if err != nil {
			return err
		}
		res.Participants = n

		n, created, err = s.assignments.apply(ctx, repos, rc.ID, coursework)
		if err != nil {
			return err
		}
		res.Assignments = n

		if len(created) > 0 {
			students, err = repos.Participants.ListStudentRecipients(ctx, rc.ID)
			if err != nil {
				return fmt.Errorf("list notification recipients: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return models.SyncResult{}, err
	}

	for _, a := range created {
		s.dispatcher.AssignmentCreated(ctx, a, students)
	}

	res.Courses = 1
	return res, nil
}

// deltaCourse registers the course and converges its submissions in one
// transaction. Transitions are announced after commit.
func (s *syncService) deltaCourse(ctx context.Context, cred models.Credential, rc models.RemoteCourse) (models.SyncResult, error) {
	listing, err := s.submissions.fetch(ctx, s.etags, cred.Token, rc.ID)
	if err != nil {
		return models.SyncResult{}, err
	}

	var (
		processed int
		changes   []submissionChange
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos *store.Repositories) error {
		if err := ensureCourse(ctx, repos.Courses, rc); err != nil {
			return err
		}

		var err error
		processed, changes, err = s.submissions.apply(ctx, repos, rc.ID, listing)
		return err
	})
	if err != nil {
		return models.SyncResult{}, err
	}

	for _, c := range changes {
		s.dispatcher.SubmissionChanged(ctx, c.to, c.submission, c.transition)
	}

	res := models.SyncResult{
		Courses:     1,
		Submissions: processed,
		Changed:     len(changes),
	}
	if len(changes) > 0 {
		res.CourseUpdates = []models.CourseUpdates{{CourseID: rc.ID, Updates: len(changes)}}
	}
	return res, nil
}

// IsPassInProgress reports whether err means another pass holds the lock.
func IsPassInProgress(err error) bool {
	return errors.Is(err, ErrPassInProgress)
}
