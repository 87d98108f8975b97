// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DayLayout is the layout of the UTC calendar day used as part of every quota key.
const DayLayout = "2006-01-02"

// QuotaKey identifies a single counter in the ledger: one bucket of one user on
// one UTC calendar day.
type QuotaKey struct {
	// UserID is the owner of the counter.
	UserID string

	// Day is the UTC calendar day in YYYY-MM-DD form.
	Day string

	// Bucket is the resource class being charged (e.g. "cheap_count").
	Bucket string
}

// NewQuotaKey builds the key for userID and bucket on the UTC day containing now.
func NewQuotaKey(userID, bucket string, now time.Time) QuotaKey {
	return QuotaKey{
		UserID: userID,
		Day:    DayOf(now),
		Bucket: bucket,
	}
}

// DayOf returns the UTC calendar day of t in YYYY-MM-DD form.
func DayOf(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// NextMidnightUTC returns the first instant of the UTC day following t.
func NextMidnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day()+1, 0, 0, 0, 0, time.UTC)
}

// NextMidnightOfDay returns the first instant after the YYYY-MM-DD UTC day.
func NextMidnightOfDay(day string) (time.Time, error) {
	d, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, err
	}

	return NextMidnightUTC(d), nil
}

// QuotaRecord is the persisted per-user, per-day counter of a single bucket.
//
// A record is created lazily by the first charge of the day, is only ever
// mutated by the atomic charge operation and is never deleted by this service.
type QuotaRecord struct {
	UserID      string    `json:"user_id"`
	Day         string    `json:"day"`
	Bucket      string    `json:"bucket"`
	Count       int64     `json:"count"`
	LastUpdated time.Time `json:"last_updated"`
}

// ChargeResult is the outcome of a single charge attempt.
//
// When Allowed is true Count holds the new value after the increment;
// otherwise it holds the unchanged current value.
type ChargeResult struct {
	Allowed bool   `json:"allowed"`
	Count   int64  `json:"count"`
	Ceiling int64  `json:"ceiling"`
	Day     string `json:"day"`
}

// Usage describes how much of a bucket a user has consumed today.
type Usage struct {
	Day          string    `json:"day"`
	Bucket       string    `json:"bucket"`
	Used         int64     `json:"used"`
	Limit        int64     `json:"limit"`
	Remaining    int64     `json:"remaining"`
	LimitReached bool      `json:"limit_reached"`
	ResetsAt     time.Time `json:"resets_at"`
}
