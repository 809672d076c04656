package enums

import "testing"

func TestParseDiscountType(t *testing.T) {
	got, err := ParseDiscountType("percentage")
	if err != nil || got != DiscountTypePercentage {
		t.Fatalf("expected percentage, got %q err=%v", got, err)
	}
	if _, err := ParseDiscountType("bogo"); err == nil {
		t.Fatal("expected error for unknown discount type")
	}
}

func TestStatusValidity(t *testing.T) {
	if !CartItemStatusSavedForLater.IsValid() {
		t.Fatal("saved_for_later should be valid")
	}
	if PostStatus("draft").IsValid() {
		t.Fatal("draft should not be a post status")
	}
	if UserRoleAdmin.String() != "admin" {
		t.Fatalf("unexpected role string %q", UserRoleAdmin.String())
	}
}
