package reportgrid

import "testing"

func TestDeriveUsage(t *testing.T) {
	cases := []struct {
		in   []UsageKind
		want UsageKind
	}{
		{[]UsageKind{UsageModifier}, UsageModifier},
		{[]UsageKind{UsageDistributor}, UsageDistributor},
		{[]UsageKind{UsageConsumer}, UsageConsumer},
		{[]UsageKind{UsageOriginator}, UsageOriginator},
		{[]UsageKind{UsageConsumer, UsageOriginator}, UsageDistributor},
		{[]UsageKind{UsageModifier, UsageConsumer}, UsageModifier},
		{[]UsageKind{UsageConsumer, UsageDistributor}, UsageDistributor},
		{[]UsageKind{UsageConsumer, UsageOriginator, UsageModifier}, UsageModifier},
		{[]UsageKind{UsageConsumer, UsageConsumer}, UsageConsumer},
	}
	for _, tc := range cases {
		got, ok := DeriveUsage(tc.in)
		if !ok || got != tc.want {
			t.Fatalf("DeriveUsage(%v)=%q want %q", tc.in, got, tc.want)
		}
	}
	if _, ok := DeriveUsage(nil); ok {
		t.Fatalf("DeriveUsage(nil) should report no usage")
	}
	if UsageDistributor.DisplayName() != "Distributor" {
		t.Fatalf("display name: %q", UsageDistributor.DisplayName())
	}
}

func TestDeriveUsageEverySubset(t *testing.T) {
	all := []UsageKind{UsageOriginator, UsageConsumer, UsageDistributor, UsageModifier}
	for mask := 1; mask < 1<<len(all); mask++ {
		var in []UsageKind
		has := map[UsageKind]bool{}
		for i, k := range all {
			if mask&(1<<i) != 0 {
				in = append(in, k)
				has[k] = true
			}
		}

		var want UsageKind
		switch {
		case has[UsageModifier]:
			want = UsageModifier
		case has[UsageDistributor]:
			want = UsageDistributor
		case has[UsageConsumer] && has[UsageOriginator]:
			want = UsageDistributor
		default:
			want = in[0]
		}

		got, ok := DeriveUsage(in)
		if !ok || got != want {
			t.Fatalf("DeriveUsage(%v)=%q want %q", in, got, want)
		}
		reversed := make([]UsageKind, len(in))
		for i, k := range in {
			reversed[len(in)-1-i] = k
		}
		if got, _ := DeriveUsage(reversed); got != want {
			t.Fatalf("DeriveUsage(%v)=%q depends on order, want %q", reversed, got, want)
		}
	}
}
