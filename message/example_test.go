package message_test

import (
	"fmt"
	"os"

	"github.com/zostay/go-mime/header"
	"github.com/zostay/go-mime/message"
	"github.com/zostay/go-mime/transfer"
)

func ExampleParseString() {
	const in = `Subject: hello
Content-Type: multipart/alternative; boundary=alt

--alt
Content-Type: text/plain

Hello *World*!
--alt
Content-Type: text/html
Content-Transfer-Encoding: base64

SGVsbG8gPGI+V29ybGQ8L2I+IQ==
--alt--
`

	msg, err := message.ParseString(in)
	if err != nil {
		panic(err)
	}

	for _, part := range msg.Parts() {
		mt, _ := part.GetMediaType()
		content, _ := part.Leaf().Content()
		fmt.Printf("%s: %s\n", mt, content)
	}

	// Output:
	// text/plain: Hello *World*!
	// text/html: Hello <b>World</b>!
}

func ExampleBuffer_single() {
	buf := &message.Buffer{}
	buf.SetBreak(header.LF)
	buf.SetSubject("A message to nowhere")
	buf.SetTransferEncoding(transfer.QuotedPrintable)
	_, _ = fmt.Fprintln(buf, "Hello World = ☺")

	_, _ = buf.Entity().WriteTo(os.Stdout)

	// Output:
	// Subject: A message to nowhere
	// Content-Transfer-Encoding: quoted-printable
	//
	// Hello World =3D =E2=98=BA
}

func ExampleBuffer_multipart() {
	txt := &message.Buffer{}
	txt.SetBreak(header.LF)
	txt.SetMediaType("text/plain")
	_, _ = fmt.Fprint(txt, "Hello *World*!")

	html := &message.Buffer{}
	html.SetBreak(header.LF)
	html.SetMediaType("text/html")
	_, _ = fmt.Fprint(html, "Hello <b>World</b>!")

	mm := &message.Buffer{}
	mm.SetBreak(header.LF)
	mm.SetSubject("Fancy message")
	mm.SetMediaType("multipart/alternative")
	_ = mm.SetBoundary("testing")
	mm.Add(txt.Entity(), html.Entity())

	_, _ = mm.Entity().WriteTo(os.Stdout)

	// Output:
	// Subject: Fancy message
	// Content-Type: multipart/alternative; boundary=testing
	//
	// --testing
	// Content-Type: text/plain
	//
	// Hello *World*!
	// --testing
	// Content-Type: text/html
	//
	// Hello <b>World</b>!
	// --testing--
}
