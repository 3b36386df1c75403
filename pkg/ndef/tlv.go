// Zaparoo NDEF
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo NDEF.
//
// Zaparoo NDEF is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo NDEF is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo NDEF.  If not, see <http://www.gnu.org/licenses/>.

package ndef

import (
	"fmt"
)

// WrapTag wraps an encoded message in an NDEF TLV followed by a terminator
// TLV. Only the single byte length form is produced, so messages longer than
// MaxTLVShortLength are rejected.
func WrapTag(message []byte) ([]byte, error) {
	length := len(message)
	if length > MaxTLVShortLength {
		return nil, fmt.Errorf("%w: message is %d bytes, TLV length field holds at most %d",
			ErrSizeLimitExceeded, length, MaxTLVShortLength)
	}

	result := make([]byte, 0, length+3)
	result = append(result, TLVNDEF, byte(length))
	result = append(result, message...)
	result = append(result, TLVTerminator)

	return result, nil
}

// BuildTag encodes the records and wraps the message for writing to a tag.
func BuildTag(records []Record) ([]byte, error) {
	message, err := EncodeMessage(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode NDEF message: %w", err)
	}

	tag, err := WrapTag(message)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap NDEF message: %w", err)
	}
	return tag, nil
}
