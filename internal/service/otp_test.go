package service

import "testing"

func TestGenerateOTP_Shape(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		otp, err := generateOTP()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(otp) != 6 {
			t.Fatalf("otp %q is not 6 characters", otp)
		}

		for _, ch := range otp {
			if ch < '0' || ch > '9' {
				t.Fatalf("otp %q contains non-digit %q", otp, ch)
			}
		}

		seen[otp] = true
	}

	// 200 draws from a million values colliding down to a handful would
	// mean a broken generator.
	if len(seen) < 150 {
		t.Errorf("only %d distinct otps in 200 draws", len(seen))
	}
}
