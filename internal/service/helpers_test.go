// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/mock"
	"github.com/sama64/nerdeala25/internal/store"
)

// repoMocks bundles the repository mocks behind one *store.Repositories.
type repoMocks struct {
	courses      *mock.MockCourseRepository
	participants *mock.MockParticipantRepository
	assignments  *mock.MockAssignmentRepository
	submissions  *mock.MockSubmissionRepository
	etags        *mock.MockETagRepository
	identities   *mock.MockIdentityRepository
	contacts     *mock.MockContactRepository
	credentials  *mock.MockCredentialRepository
}

func newRepoMocks(ctrl *gomock.Controller) (*repoMocks, *store.Repositories) {
	m := &repoMocks{
		courses:      mock.NewMockCourseRepository(ctrl),
		participants: mock.NewMockParticipantRepository(ctrl),
		assignments:  mock.NewMockAssignmentRepository(ctrl),
		submissions:  mock.NewMockSubmissionRepository(ctrl),
		etags:        mock.NewMockETagRepository(ctrl),
		identities:   mock.NewMockIdentityRepository(ctrl),
		contacts:     mock.NewMockContactRepository(ctrl),
		credentials:  mock.NewMockCredentialRepository(ctrl),
	}

	return m, &store.Repositories{
		Courses:      m.courses,
		Participants: m.participants,
		Assignments:  m.assignments,
		Submissions:  m.submissions,
		ETags:        m.etags,
		Identities:   m.identities,
		Contacts:     m.contacts,
		Credentials:  m.credentials,
	}
}

// bufferContext returns a context carrying a JSON logger that writes to the
// returned buffer.
func bufferContext() (context.Context, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := zerolog.New(buf)
	return l.WithContext(context.Background()), buf
}

func bufferLogger() (*logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &logger.Logger{Logger: zerolog.New(buf)}, buf
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

// fakeRecorder counts recorder calls by "kind/label/outcome".
type fakeRecorder struct {
	mu     sync.Mutex
	events map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{events: make(map[string]int)}
}

func (r *fakeRecorder) add(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[key]++
}

func (r *fakeRecorder) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[key]
}

func (r *fakeRecorder) PassDone(pass, outcome string, _ time.Duration) {
	r.add("pass/" + pass + "/" + outcome)
}

func (r *fakeRecorder) CourseDone(pass, outcome string) {
	r.add("course/" + pass + "/" + outcome)
}

func (r *fakeRecorder) NotificationDone(trigger, outcome string) {
	r.add("notify/" + trigger + "/" + outcome)
}
