package domain

import (
	"errors"
	"time"
)

var (
	ErrConcertNotFound = errors.New("concert not found")
	ErrConcertInactive = errors.New("concert is not active")
)

// Concert is an event shifts are billed against. Concerts are never deleted;
// only IsActive changes, and it gates which concerts new entries may reference.
type Concert struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConcertSummary is the reduced concert view joined onto time entries.
type ConcertSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
