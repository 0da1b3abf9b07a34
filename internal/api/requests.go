// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package api

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mediaforge/oohplanner/internal/planner"
	"github.com/mediaforge/oohplanner/internal/validation"
)

// AnswerPayload is one questionnaire answer on the wire. Exactly one of
// the value fields must be set, matching the question's kind.
type AnswerPayload struct {
	QuestionID string `json:"question_id" validate:"required"`

	// Value is a single option or free-text value.
	Value *string `json:"value,omitempty"`

	// Values is a list of option values or area names.
	Values []string `json:"values,omitempty"`

	// Number is a single numeric value, e.g. the budget.
	Number *float64 `json:"number,omitempty"`

	// Numbers is a list of in-charge period numbers.
	Numbers []int `json:"numbers,omitempty"`
}

// PlanRequest is the body of both planning endpoints.
type PlanRequest struct {
	Answers []AnswerPayload `json:"answers" validate:"required,min=1,dive"`
}

// decodePlanRequest reads, validates and resolves the request body into
// an AnswerSet. Validation failures are written to rw; the boolean
// reports whether decoding succeeded.
func decodePlanRequest(rw *ResponseWriter, r *http.Request) (planner.AnswerSet, bool) {
	var req PlanRequest
	var set planner.AnswerSet

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest(fmt.Sprintf("invalid request body: %v", err))
		return set, false
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidationFailed, apiErr.Message, apiErr.Details)
		return set, false
	}

	for _, p := range req.Answers {
		value, err := p.toAnswerValue()
		if err != nil {
			rw.BadRequest(fmt.Sprintf("answer %q: %v", p.QuestionID, err))
			return set, false
		}

		answer, err := planner.ResolveAnswer(p.QuestionID, value)
		if err != nil {
			rw.BadRequest(err.Error())
			return set, false
		}
		set = set.With(answer)
	}
	return set, true
}

// toAnswerValue converts the payload to the tagged answer value,
// requiring exactly one value field.
func (p *AnswerPayload) toAnswerValue() (planner.AnswerValue, error) {
	count := 0
	if p.Value != nil {
		count++
	}
	if p.Values != nil {
		count++
	}
	if p.Number != nil {
		count++
	}
	if p.Numbers != nil {
		count++
	}
	if count != 1 {
		return planner.AnswerValue{}, fmt.Errorf("exactly one of value, values, number, numbers must be set")
	}

	switch {
	case p.Value != nil:
		return planner.TextValue(*p.Value), nil
	case p.Number != nil:
		return planner.NumberValue(*p.Number), nil
	case p.Values != nil:
		return planner.TextListValue(p.Values...), nil
	default:
		return planner.NumberListValue(p.Numbers...), nil
	}
}
