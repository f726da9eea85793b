package services

import "testing"

func TestValidateUsername(t *testing.T) {
	valid := []string{"abc", "alice", "Alice_99", "a_b_c", "x1234567890123456789"}
	for _, name := range valid {
		if err := ValidateUsername(name); err != nil {
			t.Errorf("expected %q to be valid, got %v", name, err)
		}
	}

	invalid := []string{
		"",
		"ab",                    // too short
		"has space",             // whitespace
		"way_too_long_username_x", // 22 chars
		"dash-name",
		"dot.name",
		"émile",
		"name!",
	}
	for _, name := range invalid {
		if err := ValidateUsername(name); err != ErrInvalidUsername {
			t.Errorf("expected %q to be rejected with ErrInvalidUsername, got %v", name, err)
		}
	}
}

func TestUsernameKeyFolding(t *testing.T) {
	if usernameKey("Alice") != "alice" {
		t.Errorf("expected case-folded key, got %q", usernameKey("Alice"))
	}
	if usernameKey("ALICE_99") != usernameKey("alice_99") {
		t.Error("expected keys to collide regardless of case")
	}
}
