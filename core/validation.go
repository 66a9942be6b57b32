// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import "fmt"

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - Feed must be a known feed type
//   - ExternalKey must not be empty
//   - Title must not be empty
//
// NOT validated (derived or populated by the store):
//   - Index text (rebuilt on every create/update)
//   - ID (0 is valid; the store derives it from feed and external key)
//   - Position (assigned from the store's sequence on create)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if err := ValidateFeedType(record.Feed); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	if record.ExternalKey == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyExternalKey)
	}

	if record.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyTitle)
	}

	return nil
}

// ValidateFeedType validates that a FeedType has a valid value.
func ValidateFeedType(feed FeedType) error {
	if feed != FeedStaff && feed != FeedDatabase && feed != FeedBestBet {
		return fmt.Errorf("%w: value %d", ErrUnknownFeedType, feed)
	}
	return nil
}
