// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/notifier"
	"github.com/sama64/nerdeala25/models"
)

// Notification triggers and delivery outcomes reported to the Recorder.
const (
	triggerAssignment = "assignment"

	deliverySent     = "sent"
	deliveryFailed   = "failed"
	deliveryFallback = "fallback"
)

const (
	fallbackChannel = "email-fallback"
	dueDateLayout   = "02/01/2006 at 15:04"
)

type notificationDispatcher struct {
	notifier notifier.Notifier
	recorder Recorder
}

func NewNotificationDispatcher(n notifier.Notifier, recorder Recorder) NotificationDispatcher {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &notificationDispatcher{notifier: n, recorder: recorder}
}

func (d *notificationDispatcher) AssignmentCreated(ctx context.Context, a models.Assignment, students []models.Recipient) {
	log := logger.FromContext(ctx).Child("assignment_id", a.ID)
	text := newAssignmentMessage(a)

	sent := 0
	for _, st := range students {
		switch {
		case st.Phone != "":
			if err := d.notifier.Send(ctx, st, text); err != nil {
				log.Err(err).Str("phone", st.Phone).Msg("failed to send new assignment notification")
				d.recorder.NotificationDone(triggerAssignment, deliveryFailed)
				continue
			}
			sent++
			d.recorder.NotificationDone(triggerAssignment, deliverySent)
		case st.Email != "":
			log.Info().Str("channel", fallbackChannel).Str("email", st.Email).Msg("new assignment notification")
			d.recorder.NotificationDone(triggerAssignment, deliveryFallback)
		}
	}

	log.Info().Int("sent", sent).Int("students", len(students)).Msg("new assignment notifications sent")
}

func (d *notificationDispatcher) SubmissionChanged(ctx context.Context, to models.Recipient, s models.Submission, t models.Transition) {
	log := logger.FromContext(ctx).Child("submission_id", s.ID, "transition", t.String())

	text := transitionMessage(s, t)
	if text == "" {
		return
	}

	if to.Phone != "" {
		err := d.notifier.Send(ctx, to, text)
		if err == nil {
			d.recorder.NotificationDone(t.String(), deliverySent)
			return
		}
		log.Err(err).Str("phone", to.Phone).Msg("failed to send submission notification")
		d.recorder.NotificationDone(t.String(), deliveryFailed)
	}

	entry := log.Info().Str("channel", fallbackChannel)
	if to.Email != "" {
		entry = entry.Str("email", to.Email)
	}
	entry.Str("text", text).Msg("submission notification")
	d.recorder.NotificationDone(t.String(), deliveryFallback)
}

func transitionMessage(s models.Submission, t models.Transition) string {
	switch t {
	case models.TransitionLate:
		return fmt.Sprintf("You have a late submission in Classroom. Review assignment %s and catch up from your dashboard.", s.CourseWorkID)
	case models.TransitionReturned:
		return fmt.Sprintf("Your assignment was returned with feedback in Classroom (%s).", s.CourseWorkID)
	default:
		return ""
	}
}

func newAssignmentMessage(a models.Assignment) string {
	var b strings.Builder

	b.WriteString("New assignment in Classroom\n\n")
	b.WriteString(a.Title)
	if a.DueAt != nil {
		b.WriteString("\nDue: ")
		b.WriteString(a.DueAt.UTC().Format(dueDateLayout))
	}
	if a.MaxPoints != nil && *a.MaxPoints > 0 {
		b.WriteString("\nPoints: ")
		b.WriteString(strconv.FormatFloat(*a.MaxPoints, 'f', -1, 64))
	}
	b.WriteString("\n\nCheck the details on your dashboard or directly in Google Classroom. Don't forget to hand it in on time!")

	return b.String()
}
