package moqt

import (
	"testing"

	"github.com/yobol/go-moqt/internal/transport"
)

func TestNewEndpointOptionNormalizesBarePort(t *testing.T) {
	opt, err := NewEndpointOption(":4433", transport.ProtoQuic)
	if err != nil {
		t.Fatalf("NewEndpointOption: %v", err)
	}
	if opt.addr.Host != "0.0.0.0:4433" {
		t.Fatalf("addr.Host = %q, want 0.0.0.0:4433", opt.addr.Host)
	}
	if opt.addr.Scheme != "https" {
		t.Fatalf("addr.Scheme = %q, want https", opt.addr.Scheme)
	}
}

func TestNewEndpointOptionKeepsExplicitScheme(t *testing.T) {
	opt, err := NewEndpointOption("https://relay.example.com:4433/moq", transport.ProtoWebTransport)
	if err != nil {
		t.Fatalf("NewEndpointOption: %v", err)
	}
	if opt.addr.Host != "relay.example.com:4433" || opt.addr.Path != "/moq" {
		t.Fatalf("addr = %+v", opt.addr)
	}
}

func TestNewEndpointOptionRejectsMalformedAddress(t *testing.T) {
	_, err := NewEndpointOption("https://[::1", transport.ProtoQuic)
	if !IsConfigurationErr(err) {
		t.Fatalf("got %v, want errConfiguration", err)
	}
}

func TestNewEndpointOptionDefaults(t *testing.T) {
	opt, err := NewEndpointOption(":4433", transport.ProtoQuic)
	if err != nil {
		t.Fatalf("NewEndpointOption: %v", err)
	}
	if len(opt.supportedVersions) != 1 || opt.supportedVersions[0] != DraftVersion {
		t.Fatalf("supportedVersions = %v, want [DraftVersion]", opt.supportedVersions)
	}
	if opt.maxRequestID != DefaultMaxRequestID {
		t.Fatalf("maxRequestID = %d, want %d", opt.maxRequestID, DefaultMaxRequestID)
	}
	if opt.mailboxCapacity != DefaultMailboxCapacity {
		t.Fatalf("mailboxCapacity = %d, want %d", opt.mailboxCapacity, DefaultMailboxCapacity)
	}
}

func TestEndpointOptionSetMailboxCapacityIgnoresBelowMinimum(t *testing.T) {
	opt, err := NewEndpointOption(":4433", transport.ProtoQuic)
	if err != nil {
		t.Fatalf("NewEndpointOption: %v", err)
	}
	opt.SetMailboxCapacity(1)
	if opt.mailboxCapacity != DefaultMailboxCapacity {
		t.Fatalf("mailboxCapacity = %d, want unchanged %d", opt.mailboxCapacity, DefaultMailboxCapacity)
	}
	opt.SetMailboxCapacity(50)
	if opt.mailboxCapacity != 50 {
		t.Fatalf("mailboxCapacity = %d, want 50", opt.mailboxCapacity)
	}
}

func TestEndpointOptionSetSupportedVersionsIgnoresEmpty(t *testing.T) {
	opt, err := NewEndpointOption(":4433", transport.ProtoQuic)
	if err != nil {
		t.Fatalf("NewEndpointOption: %v", err)
	}
	opt.SetSupportedVersions()
	if len(opt.supportedVersions) != 1 || opt.supportedVersions[0] != DraftVersion {
		t.Fatalf("supportedVersions changed by empty call: %v", opt.supportedVersions)
	}
	opt.SetSupportedVersions(1, 2, 3)
	if len(opt.supportedVersions) != 3 {
		t.Fatalf("supportedVersions = %v, want [1 2 3]", opt.supportedVersions)
	}
}
