package validator_test

import (
	"strings"
	"testing"

	"crashify360/internal/model"
	"crashify360/internal/validator"
)

func validCase() model.CaseInput {
	return model.CaseInput{
		VIN:          "1HGBH41JXMN109186",
		PolicyType:   "comprehensive",
		PolicyValue:  25000,
		SalvageValue: 5000,
		RepairQuote:  20000,
		LossType:     "client",
	}
}

func errorFields(r validator.Result) []string {
	fields := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

func hasErrorOn(r validator.Result, field string) bool {
	for _, e := range r.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateVIN(t *testing.T) {
	v := validator.New(validator.DefaultRules())

	t.Run("Valid VIN", func(t *testing.T) {
		if !v.ValidateVIN("1HGBH41JXMN109186") {
			t.Error("expected valid VIN to pass")
		}
	})

	t.Run("Trims And Uppercases", func(t *testing.T) {
		if !v.ValidateVIN("  1hgbh41jxmn109186  ") {
			t.Error("expected trimmed lowercase VIN to pass")
		}
	})

	t.Run("Wrong Length", func(t *testing.T) {
		if v.ValidateVIN("1HGBH41JX") {
			t.Error("expected short VIN to fail")
		}
		if v.ValidateVIN("1HGBH41JXMN1091860") {
			t.Error("expected 18-char VIN to fail")
		}
		if v.ValidateVIN("") {
			t.Error("expected empty VIN to fail")
		}
	})

	t.Run("Excluded Letters", func(t *testing.T) {
		for _, bad := range []string{
			"1HGBH41IXMN109186", // I
			"1HGBH41OXMN109186", // O
			"1HGBH41QXMN109186", // Q
		} {
			if v.ValidateVIN(bad) {
				t.Errorf("expected VIN %q to fail", bad)
			}
		}
	})

	t.Run("Full Alphabet Accepted", func(t *testing.T) {
		// All 33 legal symbols spread over 17-char strings.
		alphabet := "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"
		for i := 0; i+17 <= len(alphabet); i++ {
			vin := alphabet[i : i+17]
			if !v.ValidateVIN(vin) {
				t.Errorf("expected VIN %q to pass", vin)
			}
		}
	})
}

func TestValidateContactFormats(t *testing.T) {
	v := validator.New(validator.DefaultRules())

	t.Run("Email", func(t *testing.T) {
		if !v.ValidateEmail("owner@example.com") {
			t.Error("expected valid email to pass")
		}
		for _, bad := range []string{"invalid.email", "no@tld.", "@example.com", "a@b.c"} {
			if v.ValidateEmail(bad) {
				t.Errorf("expected email %q to fail", bad)
			}
		}
	})

	t.Run("Phone", func(t *testing.T) {
		for _, good := range []string{
			"0412345678",
			"+61412345678",
			"61412345678",
			"04 1234 5678",
			"(04) 1234-5678",
		} {
			if !v.ValidatePhone(good) {
				t.Errorf("expected phone %q to pass", good)
			}
		}
		for _, bad := range []string{"1234", "0912345678", "+1412345678", ""} {
			if v.ValidatePhone(bad) {
				t.Errorf("expected phone %q to fail", bad)
			}
		}
	})
}

func TestValidateCase(t *testing.T) {
	v := validator.New(validator.DefaultRules())

	t.Run("Valid Case", func(t *testing.T) {
		res := v.ValidateCase(validCase())
		if !res.IsValid() {
			t.Fatalf("expected valid, got errors: %v", res.Errors)
		}
		if len(res.Warnings) != 0 {
			t.Errorf("expected no warnings, got %v", res.Warnings)
		}
	})

	t.Run("Negative Repair Quote", func(t *testing.T) {
		in := validCase()
		in.RepairQuote = -100
		res := v.ValidateCase(in)
		if res.IsValid() {
			t.Fatal("expected invalid")
		}
		if !hasErrorOn(res, "repair_quote") {
			t.Errorf("expected error on repair_quote, got %v", errorFields(res))
		}
	})

	t.Run("Salvage Exceeds Policy", func(t *testing.T) {
		in := validCase()
		in.SalvageValue = 26000
		res := v.ValidateCase(in)
		if !hasErrorOn(res, "salvage_value") {
			t.Errorf("expected error on salvage_value, got %v", errorFields(res))
		}
	})

	t.Run("Policy Value Bounds", func(t *testing.T) {
		in := validCase()
		in.PolicyValue = 500
		res := v.ValidateCase(in)
		if !hasErrorOn(res, "policy_value") {
			t.Fatal("expected error on policy_value below minimum")
		}
		var msg string
		for _, e := range res.Errors {
			if e.Field == "policy_value" {
				msg = e.Message
			}
		}
		if !strings.Contains(msg, "at least") {
			t.Errorf("expected minimum bound named in message, got %q", msg)
		}

		in.PolicyValue = 600000
		// Salvage now below policy again to isolate the bound error.
		in.SalvageValue = 5000
		res = v.ValidateCase(in)
		msg = ""
		for _, e := range res.Errors {
			if e.Field == "policy_value" {
				msg = e.Message
			}
		}
		if !strings.Contains(msg, "cannot exceed") {
			t.Errorf("expected maximum bound named in message, got %q", msg)
		}
	})

	t.Run("High Repair Quote Is Warning Not Error", func(t *testing.T) {
		in := validCase()
		in.RepairQuote = 60000 // 2.4x policy value
		res := v.ValidateCase(in)
		if !res.IsValid() {
			t.Fatalf("expected valid, got errors: %v", res.Errors)
		}
		if len(res.Warnings) == 0 {
			t.Fatal("expected a warning on repair_quote")
		}
		if res.Warnings[0].Field != "repair_quote" {
			t.Errorf("expected warning on repair_quote, got %s", res.Warnings[0].Field)
		}
		if !strings.Contains(res.Warnings[0].Message, "2.4x") {
			t.Errorf("expected multiple quoted in warning, got %q", res.Warnings[0].Message)
		}
	})

	t.Run("All Violations Reported At Once", func(t *testing.T) {
		res := v.ValidateCase(model.CaseInput{
			VIN:          "BAD",
			PolicyType:   "unknown",
			PolicyValue:  -1,
			SalvageValue: -1,
			RepairQuote:  -1,
			LossType:     "mystery",
		})
		for _, field := range []string{"vin", "policy_type", "loss_type", "policy_value", "salvage_value", "repair_quote"} {
			if !hasErrorOn(res, field) {
				t.Errorf("expected error on %s, got %v", field, errorFields(res))
			}
		}
	})

	t.Run("Optional Contacts", func(t *testing.T) {
		in := validCase()
		res := v.ValidateCase(in)
		if !res.IsValid() {
			t.Fatal("absent contacts must not error")
		}

		in.OwnerEmail = "not-an-email"
		in.OwnerPhone = "12345"
		res = v.ValidateCase(in)
		if !hasErrorOn(res, "owner_email") || !hasErrorOn(res, "owner_phone") {
			t.Errorf("expected contact errors, got %v", errorFields(res))
		}
	})

	t.Run("Summary", func(t *testing.T) {
		res := v.ValidateCase(validCase())
		if !strings.Contains(res.Summary(), "All validations passed") {
			t.Errorf("unexpected summary: %q", res.Summary())
		}

		in := validCase()
		in.VIN = "BAD"
		res = v.ValidateCase(in)
		if !strings.Contains(res.Summary(), "1 error(s)") || !strings.Contains(res.Summary(), "vin") {
			t.Errorf("unexpected summary: %q", res.Summary())
		}
	})
}

func TestSanitize(t *testing.T) {
	t.Run("Strips NUL And Control Characters", func(t *testing.T) {
		got := validator.Sanitize("hello\x00 \x01world\x07", 100)
		if got != "hello world" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Keeps Newline And Tab", func(t *testing.T) {
		got := validator.Sanitize("a\n\tb", 100)
		if got != "a\n\tb" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Truncates", func(t *testing.T) {
		got := validator.Sanitize("abcdefghij", 4)
		if got != "abcd" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Trims", func(t *testing.T) {
		got := validator.Sanitize("  padded  ", 100)
		if got != "padded" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if validator.Sanitize("", 10) != "" {
			t.Error("expected empty output")
		}
	})
}
