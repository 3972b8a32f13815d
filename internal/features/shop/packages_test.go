package shop

import "testing"

func TestDecodePayloadRoundTrip(t *testing.T) {
	for kind, list := range map[string][]Package{KindCoins: CoinPackages, KindGems: GemPackages} {
		for i := range list {
			payload := EncodePayload(kind, i)
			gotKind, gotIdx, err := DecodePayload(payload)
			if err != nil {
				t.Fatalf("DecodePayload(%q): %v", payload, err)
			}
			if gotKind != kind || gotIdx != i {
				t.Errorf("DecodePayload(%q) = (%q, %d), want (%q, %d)", payload, gotKind, gotIdx, kind, i)
			}
		}
	}
}

func TestDecodePayloadInvalid(t *testing.T) {
	for _, payload := range []string{"", "coins", "coins_", "coins_x", "coins_99", "stars_0", "gems_-1"} {
		if _, _, err := DecodePayload(payload); err == nil {
			t.Errorf("DecodePayload(%q) = nil, want error", payload)
		}
	}
}

func TestParsePayCallback(t *testing.T) {
	method, kind, idx, ok := ParsePayCallback("pay_stars_coins_1")
	if !ok || method != PayStars || kind != KindCoins || idx != 1 {
		t.Errorf("ParsePayCallback = (%q, %q, %d, %v)", method, kind, idx, ok)
	}

	for _, data := range []string{"pay_stars_coins", "buy_coins", "pay_stars_coins_x", ""} {
		if _, _, _, ok := ParsePayCallback(data); ok {
			t.Errorf("ParsePayCallback(%q) = ok, want !ok", data)
		}
	}
}
