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

import "strings"

// uriPrefixes is the NFC Forum URI RTD abbreviation table. The index is the
// abbreviation code; code 0 means the URI is stored unabbreviated.
//
// Matching walks this table in order and takes the first prefix found, so
// the order here decides the chosen code and must not be changed.
var uriPrefixes = [...]string{
	"",
	"http://www.",
	"https://www.",
	"http://",
	"https://",
	"tel:",
	"mailto:",
	"ftp://anonymous:anonymous@",
	"ftp://ftp.",
	"ftps://",
	"sftp://",
	"smb://",
	"nfs://",
	"ftp://",
	"dav://",
	"news:",
	"telnet://",
	"imap:",
	"rtsp://",
	"urn:",
	"pop:",
	"sip:",
	"sips:",
	"tftp:",
	"btspp://",
	"btl2cap://",
	"btgoep://",
	"tcpobex://",
	"irdaobex://",
	"file://",
	"urn:epc:id:",
	"urn:epc:tag:",
	"urn:epc:pat:",
	"urn:epc:raw:",
	"urn:epc:",
	"urn:nfc:",
}

// URIPrefix returns the prefix for an abbreviation code and whether the
// code is defined. Code 0 returns an empty prefix.
func URIPrefix(code byte) (string, bool) {
	if int(code) >= len(uriPrefixes) {
		return "", false
	}
	return uriPrefixes[code], true
}

// URIPrefixes returns a copy of the abbreviation table indexed by code.
func URIPrefixes() []string {
	out := make([]string, len(uriPrefixes))
	copy(out, uriPrefixes[:])
	return out
}

// MatchURIPrefix returns the code of the first table entry that occurs
// anywhere in uri and the uri with that first occurrence removed. When no
// entry matches, it returns code 0 and uri unchanged.
func MatchURIPrefix(uri string) (code byte, suffix string) {
	for i := 1; i < len(uriPrefixes); i++ {
		prefix := uriPrefixes[i]
		if strings.Contains(uri, prefix) {
			return byte(i), strings.Replace(uri, prefix, "", 1)
		}
	}
	return 0, uri
}
