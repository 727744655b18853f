package handlers

import (
	"strings"
	"testing"
)

func TestFieldErrors_CollectsEveryViolation(t *testing.T) {
	in := registerInput{
		Username: strings.Repeat("u", 251),
		Email:    "",
		Password: strings.Repeat("p", 101),
	}
	errs := in.validate()

	if errs.ok() {
		t.Fatal("expected violations")
	}
	if len(errs["username"]) != 1 {
		t.Fatalf("expected one username error, got %v", errs["username"])
	}
	if len(errs["email"]) != 1 {
		t.Fatalf("expected one email error, got %v", errs["email"])
	}
	if len(errs["password"]) != 1 {
		t.Fatalf("expected one password error, got %v", errs["password"])
	}
	if _, ok := errs["role"]; ok {
		t.Fatalf("role is optional, got %v", errs["role"])
	}
}

func TestTitleInput_Validate(t *testing.T) {
	ok := titleInput{
		TitleName:   "Show1",
		TitleType:   "series",
		TitleStatus: "watching",
		UserName:    "alice",
	}
	if errs := ok.validate(); !errs.ok() {
		t.Fatalf("expected valid input, got %v", errs)
	}

	// rating is optional; everything else is required
	if errs := (titleInput{}).validate(); len(errs) != 4 {
		t.Fatalf("expected 4 violated fields, got %v", errs)
	}
}
