package classifier

import (
	"testing"

	"github.com/RecoveryAshes/ema-blocklist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProgress struct {
	n int
}

func (p *countingProgress) Add(n int) error {
	p.n += n
	return nil
}

func TestClassify(t *testing.T) {
	urls := models.NewURLSet(
		"bad-domain.com",
		"Sub.Bad-Domain.com",
		"sub.bad-domain.com/login",
		"203.0.113.5",
		"10.0.0.1:8080/panel",
		"01.2.3.4",
		"999.1.1.1",
		"[2001:db8::1]",
		"localhost",
		"co.uk",
	)

	progress := &countingProgress{}
	got := Classify(urls, WithProgress(progress))

	assert.Equal(t, []string{"10.0.0.1", "203.0.113.5"}, got.IPs.Sorted())
	assert.Equal(t,
		[]string{"Sub.Bad-Domain.com", "bad-domain.com", "sub.bad-domain.com/login"},
		got.FQDNURLs.Sorted())
	assert.Equal(t, []string{"bad-domain.com", "sub.bad-domain.com"}, got.FQDNs.Sorted())
	assert.Equal(t, 5, got.Discarded)
	assert.Equal(t, urls.Len(), progress.n)
}

func TestClassify_Disjoint(t *testing.T) {
	urls := models.NewURLSet("a.com", "b.a.com/x", "1.1.1.1", "8.8.8.8", "c.org")
	got := Classify(urls, WithExtractor(NewExtractor()))

	// 每个FQDN URL都能对应到一个FQDN, 且不会同时出现在IPs中
	x := NewExtractor()
	for u := range got.FQDNURLs {
		fqdn := x.Extract(u).FQDN()
		require.NotEmpty(t, fqdn)
		assert.True(t, got.FQDNs.Has(fqdn), u)
		assert.False(t, got.IPs.Has(u), u)
	}
	for ip := range got.IPs {
		assert.False(t, got.FQDNURLs.Has(ip))
		assert.False(t, got.FQDNs.Has(ip))
	}
	assert.Equal(t, urls.Len(), got.IPs.Len()+got.FQDNURLs.Len()+got.Discarded)
}

func TestClassify_LeadingDot(t *testing.T) {
	got := Classify(models.NewURLSet(".foo.com/login"))

	assert.Equal(t, []string{".foo.com/login"}, got.FQDNURLs.Sorted())
	assert.Equal(t, []string{"foo.com"}, got.FQDNs.Sorted())
	assert.Equal(t, 0, got.Discarded)
}

func TestClassify_Empty(t *testing.T) {
	got := Classify(models.NewURLSet())
	assert.True(t, got.IsEmpty())
	assert.Equal(t, 0, got.Discarded)
}

func TestIsIPv4(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"203.0.113.5", true},
		{"0.0.0.0", true},
		{"255.255.255.255", true},
		{"256.1.1.1", false},
		{"01.2.3.4", false},
		{"1.2.3", false},
		{"::1", false},
		{"::ffff:1.2.3.4", false},
		{"example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIPv4(tt.in))
		})
	}
}
