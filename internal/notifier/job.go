// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/sama64/nerdeala25/models"
)

const (
	initiatedBy     = "classroom-sync"
	defaultName     = "Classroom user"
	messageTypeText = "text"
	priorityNormal  = "normal"
)

// Job is the message envelope understood by the messaging gateway, both on
// its /send endpoint and on its pending queue.
type Job struct {
	ID        string       `json:"id"`
	Recipient JobRecipient `json:"recipient"`
	Message   JobMessage   `json:"message"`
	Metadata  JobMetadata  `json:"metadata"`
}

type JobRecipient struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type JobMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type JobMetadata struct {
	Retries     int    `json:"retries"`
	InitiatedBy string `json:"initiatedBy"`
	Priority    string `json:"priority"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// newJob builds the envelope for one message. The id is derived from the
// send time and the phone digits.
func newJob(to models.Recipient, text string, now time.Time) Job {
	name := strings.TrimSpace(to.Name)
	if name == "" {
		name = defaultName
	}

	return Job{
		ID: fmt.Sprintf("api-%d-%s", now.Unix(), strings.ReplaceAll(to.Phone, "+", "")),
		Recipient: JobRecipient{
			Phone: to.Phone,
			Name:  name,
		},
		Message: JobMessage{
			Type: messageTypeText,
			Text: text,
		},
		Metadata: JobMetadata{
			Retries:     0,
			InitiatedBy: initiatedBy,
			Priority:    priorityNormal,
		},
	}
}
