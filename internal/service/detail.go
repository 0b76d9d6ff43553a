package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/target/dirsearch/internal/domain/directory"
	apperrors "github.com/target/dirsearch/internal/errors"
)

const detailSeparator = "------------"

// detailField is one "Label: value" line; Expr is a JMESPath expression
// evaluated against the record fields.
type detailField struct {
	Label string
	Expr  string
}

var principalDetailFields = []detailField{
	{"DisplayName", "displayName"},
	{"GivenName", "givenName"},
	{"Surname", "surname"},
	{"JobTitle", "jobTitle"},
	{"Mail", "mail"},
	{"MobilePhone", "mobilePhone"},
	{"BusinessPhones", "join(', ', businessPhones)"},
	{"OfficeLocation", "officeLocation"},
	{"UserPrincipalName", "userPrincipalName"},
}

var deviceDetailFields = []detailField{
	{"Device Name", "deviceName"},
	{"Model", "model"},
	{"Serial Number", "serialNumber"},
}

var ownerDetailFields = []detailField{
	{"UserPrincipalName", "userPrincipalName"},
	{"DisplayName", "displayName"},
}

// SelectIndex renders details for the i-th record (zero-based) of the current page.
func (s *SearchCoordinator) SelectIndex(ctx context.Context, i int) (string, error) {
	page := s.CurrentPage()
	if i < 0 || i >= len(page.Records) {
		return "", apperrors.InvalidInput(fmt.Sprintf("no entry %d on page %d", i+1, page.Number))
	}
	return s.SelectDetail(ctx, page.Records[i])
}

// SelectDetail renders rec's fields, then appends the related records: the
// devices registered to a principal, or the user a device is assigned to.
//
// OnDetail is called with the field block first and again once the related
// section is known. A newer selection or Reset supersedes this one; its
// output is no longer published.
func (s *SearchCoordinator) SelectDetail(ctx context.Context, rec directory.Record) (string, error) {
	sel := s.selection.Add(1)

	var b strings.Builder
	switch rec.Kind() {
	case directory.KindPrincipal:
		writeFields(&b, rec, principalDetailFields)
	case directory.KindDevice:
		writeFields(&b, rec, deviceDetailFields)
	default:
		return "", apperrors.InvalidInput("unsupported record")
	}
	b.WriteString(detailSeparator)
	s.publishDetail(sel, b.String())

	if rec.IsPrincipal() {
		b.WriteString(s.registeredDevices(ctx, rec))
	} else {
		b.WriteString(s.associatedUser(ctx, rec))
	}
	text := b.String()
	s.publishDetail(sel, text)
	return text, nil
}

func (s *SearchCoordinator) registeredDevices(ctx context.Context, principal directory.Record) string {
	var b strings.Builder
	b.WriteString("\n\nRegistered Devices:\n")

	id := principal.ID()
	if id == "" {
		b.WriteString("No devices found.")
		return b.String()
	}
	tok, err := s.session.GetToken(ctx)
	if err != nil {
		fmt.Fprintf(&b, "Error fetching devices: %s", reasonOf(err))
		return b.String()
	}
	devices, err := s.timedLookup(ctx, "owner_devices", func(ctx context.Context) ([]directory.Record, error) {
		return s.directory.GetDevicesByOwner(ctx, tok, id)
	})
	switch {
	case err != nil:
		fmt.Fprintf(&b, "Error fetching devices: %s", reasonOf(err))
	case len(devices) == 0:
		b.WriteString("No devices found.")
	default:
		for _, d := range devices {
			writeFields(&b, d, deviceDetailFields)
			b.WriteString(detailSeparator)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (s *SearchCoordinator) associatedUser(ctx context.Context, device directory.Record) string {
	var b strings.Builder
	b.WriteString("\n\nAssociated User:\n")

	userID := device.Field("userId")
	if userID == "" {
		b.WriteString("Associated user not found.")
		return b.String()
	}
	tok, err := s.session.GetToken(ctx)
	if err != nil {
		fmt.Fprintf(&b, "Error fetching associated user: %s", reasonOf(err))
		return b.String()
	}
	var owner directory.Record
	_, err = s.timedLookup(ctx, "device_owner", func(ctx context.Context) ([]directory.Record, error) {
		var lerr error
		owner, lerr = s.directory.GetPrincipalByID(ctx, tok, userID)
		if lerr != nil {
			return nil, lerr
		}
		return []directory.Record{owner}, nil
	})
	switch {
	case apperrors.IsNotFound(err):
		b.WriteString("Associated user not found.")
	case err != nil:
		fmt.Fprintf(&b, "Error fetching associated user: %s", reasonOf(err))
	default:
		writeFields(&b, owner, ownerDetailFields)
	}
	return b.String()
}

func (s *SearchCoordinator) publishDetail(sel uint64, text string) {
	if s.onDetail == nil {
		return
	}
	s.detailMu.Lock()
	defer s.detailMu.Unlock()
	if s.selection.Load() != sel {
		return
	}
	s.onDetail(text)
}

func writeFields(b *strings.Builder, rec directory.Record, fields []detailField) {
	for _, f := range fields {
		fmt.Fprintf(b, "%s: %s\n", f.Label, rec.LookupOr(f.Expr, directory.NotAvailable))
	}
}
