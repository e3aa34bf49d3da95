package request

import "testing"

func TestOrderContentRequest_ToInput(t *testing.T) {
	r := OrderContentRequest{
		Title:           "Ceramic mugs",
		Description:     "White, 350ml",
		Quantity:        500,
		ProductLink:     " https://example.com/mug ",
		DeliveryAddress: " 1 Main St ",
		PhoneNumber:     " +55 11 99999-0000 ",
		UploadedFiles: []UploadedFileRequest{
			{Name: " reference.png ", Size: 1024, Type: "image/png", URL: "https://bucket/ref.png"},
		},
	}

	in := r.ToInput()
	if in.Title != "Ceramic mugs" || in.Quantity != 500 {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.ProductLink != "https://example.com/mug" || in.DeliveryAddress != "1 Main St" || in.PhoneNumber != "+55 11 99999-0000" {
		t.Fatalf("expected trimmed fields, got %+v", in)
	}
	if len(in.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(in.Files))
	}
	f := in.Files[0]
	if f.Name != "reference.png" {
		t.Fatalf("expected trimmed file name, got %q", f.Name)
	}
	if f.ID == "" || f.UploadedAt.IsZero() {
		t.Fatalf("expected server-side id and timestamp, got %+v", f)
	}
}

func TestOrderContentRequest_ToInputWithoutFiles(t *testing.T) {
	r := OrderContentRequest{Title: "t", Description: "d", Quantity: 1}
	in := r.ToInput()
	if in.Files != nil {
		t.Fatalf("expected nil files, got %+v", in.Files)
	}
}
