package chain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

const tokenURIPrefix = "data:application/json;base64,"

// BadgeMetadata is the NFT metadata document carried inline in the mint
// transaction.
type BadgeMetadata struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Attributes  []BadgeAttribute `json:"attributes"`
}

type BadgeAttribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// NewBadgeMetadata builds the metadata document for a course badge.
// Course titles routinely contain emoji; everything downstream of here
// must be byte-safe.
func NewBadgeMetadata(courseTitle string, courseNumber uint64, emoji, imageURL string, totalLessons int) BadgeMetadata {
	return BadgeMetadata{
		Name:        fmt.Sprintf("%s Badge", courseTitle),
		Description: fmt.Sprintf("Completion badge for %s course on SynauLearn. This NFT certifies that the holder has successfully completed all lessons and assessments in this course.", courseTitle),
		Image:       imageURL,
		Attributes: []BadgeAttribute{
			{TraitType: "Course", Value: courseTitle},
			{TraitType: "Course ID", Value: courseNumber},
			{TraitType: "Emoji", Value: emoji},
			{TraitType: "Total Lessons", Value: totalLessons},
			{TraitType: "Platform", Value: "SynauLearn"},
			{TraitType: "Type", Value: "Course Completion Badge"},
		},
	}
}

// EncodeBadgeTokenURI serializes the metadata into a base64 data URI.
// base64 operates on the raw UTF-8 bytes, so multi-byte runes survive
// the round trip unchanged.
func EncodeBadgeTokenURI(m BadgeMetadata) (string, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal badge metadata: %w", err)
	}
	return tokenURIPrefix + base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeBadgeTokenURI reverses EncodeBadgeTokenURI.
func DecodeBadgeTokenURI(uri string) (BadgeMetadata, error) {
	var m BadgeMetadata
	if !strings.HasPrefix(uri, tokenURIPrefix) {
		return m, fmt.Errorf("not a base64 json data uri")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, tokenURIPrefix))
	if err != nil {
		return m, fmt.Errorf("decode token uri: %w", err)
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("unmarshal badge metadata: %w", err)
	}
	return m, nil
}
