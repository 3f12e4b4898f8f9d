package types

import (
	"fmt"
	"strings"
)

// Choice is a ballot answer. It serialises as "yes" or "no".
type Choice string

const (
	ChoiceYes Choice = "yes"
	ChoiceNo  Choice = "no"
)

// ChoiceFromBool maps true to ChoiceYes and false to ChoiceNo.
func ChoiceFromBool(b bool) Choice {
	if b {
		return ChoiceYes
	}
	return ChoiceNo
}

// ParseChoice accepts yes/no, y/n and true/false in any case.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return ChoiceYes, nil
	case "no", "n", "false":
		return ChoiceNo, nil
	}
	return "", fmt.Errorf("invalid choice %q (want yes or no)", s)
}

// Bool returns the on-chain representation of the choice.
func (c Choice) Bool() bool { return c == ChoiceYes }

// Valid reports whether c is one of the two known answers.
func (c Choice) Valid() bool { return c == ChoiceYes || c == ChoiceNo }

// String returns the string form of the choice.
func (c Choice) String() string { return string(c) }

// VoteMessage is the payload a voter signs before submitting a vote.
type VoteMessage struct {
	Vote Choice `json:"vote"`
}
