package header

import (
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// ParseAddressList reads an address list, falling back to a loose reading
// when the strict parser refuses the input. It always produces a result,
// though for garbage that result may be odd.
func ParseAddressList(body string) addr.AddressList {
	if al, err := addr.ParseEmailAddressList(body); err == nil {
		return al
	}
	return parseEmailAddressList(body)
}

// GetAddressList parses the named field with ParseAddressList.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	if v, ok := h.recall(name); ok {
		if al, isList := v.(addr.AddressList); isList {
			return al, nil
		}
	}

	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	al := ParseAddressList(body)
	h.remember(name, body, al)
	return al, nil
}

// GetAllAddressLists parses every field of the given name.
func (h *Header) GetAllAddressLists(name string) ([]addr.AddressList, error) {
	if v, ok := h.recall(name); ok {
		if als, isLists := v.([]addr.AddressList); isLists {
			return als, nil
		}
	}

	bs, err := h.GetAll(name)
	if err != nil {
		return nil, err
	}

	als := make([]addr.AddressList, 0, len(bs))
	for _, b := range bs {
		als = append(als, ParseAddressList(b))
	}
	h.remember(name, strings.Join(bs, "\n"), als)
	return als, nil
}

// SetAddressList replaces the named field with one holding the given
// addresses.
func (h *Header) SetAddressList(name string, as ...addr.Address) {
	al := addr.AddressList(as)
	body := al.String()
	h.Set(name, body)
	h.remember(name, body, al)
}

// SetAllAddressLists replaces the named fields with one field per list.
func (h *Header) SetAllAddressLists(name string, lists ...addr.AddressList) {
	bs := make([]string, 0, len(lists))
	for _, al := range lists {
		bs = append(bs, al.String())
	}
	h.SetAll(name, bs...)
	h.remember(name, strings.Join(bs, "\n"), lists)
}

// setAddresses accepts strings, which must parse strictly, and addr.Address
// values.
func (h *Header) setAddresses(name string, vs []any) error {
	al := make(addr.AddressList, 0, len(vs))
	for _, v := range vs {
		switch a := v.(type) {
		case addr.Address:
			al = append(al, a)
		case string:
			parsed, err := addr.ParseEmailAddress(a)
			if err != nil {
				return err
			}
			al = append(al, parsed)
		default:
			return ErrWrongAddressType
		}
	}
	h.SetAddressList(name, al...)
	return nil
}

func (h *Header) GetTo() (addr.AddressList, error) { return h.GetAddressList(To) }

// SetTo takes strings or addr.Address values. Anything else fails with
// ErrWrongAddressType.
func (h *Header) SetTo(as ...any) error { return h.setAddresses(To, as) }

func (h *Header) GetCc() (addr.AddressList, error) { return h.GetAddressList(Cc) }

// SetCc works like SetTo.
func (h *Header) SetCc(as ...any) error { return h.setAddresses(Cc, as) }

func (h *Header) GetFrom() (addr.AddressList, error) { return h.GetAddressList(From) }

// SetFrom works like SetTo.
func (h *Header) SetFrom(as ...any) error { return h.setAddresses(From, as) }

// parseEmailAddressList is the fallback used when the strict parser in
// github.com/zostay/go-addr rejects a field body. Mail from the Internet is
// messy and getting something useful beats getting an error.
//
// Each comma-separated item is cleaned of comments, which are kept aside. The
// last word left is taken as the address and any words before it as the
// display name. Groups are not recognized.
func parseEmailAddressList(v string) addr.AddressList {
	items := strings.Split(v, ",")
	as := make(addr.AddressList, 0, len(items))
	for _, orig := range items {
		mb, com := splitComments(orig)
		mb = strings.TrimSpace(mb)
		com = strings.TrimSpace(com)

		words := strings.Fields(mb)
		if len(words) == 0 {
			continue
		}

		email := words[len(words)-1]
		dn := strings.Join(words[:len(words)-1], " ")

		local, domain := email, ""
		if i := strings.Index(email, "@"); i > -1 {
			local, domain = email[:i], email[i+1:]
		}
		spec := addr.NewAddrSpecParsed(local, domain, email)

		mailbox, err := addr.NewMailboxParsed(dn, spec, com, orig)
		if err != nil {
			mailbox, _ = addr.NewMailboxParsed(dn, spec, "", orig)
		}

		as = append(as, mailbox)
	}

	return as
}

// splitComments separates the parenthesized comments of s from the rest of
// it. Nested parentheses stay inside the comment. An unmatched close
// parenthesis is kept as ordinary text.
func splitComments(s string) (string, string) {
	var clean, comment strings.Builder
	depth := 0
	for _, c := range s {
		switch {
		case c == '(':
			depth++
			if depth > 1 {
				comment.WriteRune(c)
			}
		case c == ')' && depth == 0:
			clean.WriteRune(c)
		case c == ')':
			depth--
			if depth > 0 {
				comment.WriteRune(c)
			}
		case depth > 0:
			comment.WriteRune(c)
		default:
			clean.WriteRune(c)
		}
	}

	return clean.String(), comment.String()
}
