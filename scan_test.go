package balala

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"testing"
	"time"
)

type Account struct {
	Id        int64
	Name      string
	Balance   float64
	Active    bool
	Nick      *string
	CreatedAt time.Time
	Note      sql.NullString
	Raw       []byte
}

func TestDecode(t *testing.T) {
	t.Parallel()
	db, _ := newTestDB()

	var a Account
	err := db.Decode(Row{
		"id":         int64(1),
		"NAME":       "jack",
		"balance":    "12.5",
		"active":     int64(1),
		"nick":       "j",
		"created_at": "2024-01-02 03:04:05",
		"note":       "n",
		"raw":        "abc",
		"extra":      1,
	}, &a)
	if err != nil {
		t.Fatal(err)
	}
	if a.Id != 1 || a.Name != "jack" || a.Balance != 12.5 || !a.Active {
		t.Errorf("Decode() = %+v", a)
	}
	if a.Nick == nil || *a.Nick != "j" {
		t.Errorf("Nick = %v, want j", a.Nick)
	}
	if want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC); !a.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", a.CreatedAt, want)
	}
	if !a.Note.Valid || a.Note.String != "n" {
		t.Errorf("Note = %+v", a.Note)
	}
	if string(a.Raw) != "abc" {
		t.Errorf("Raw = %q, want abc", a.Raw)
	}

	if err := db.Decode(Row{"name": int64(5), "nick": nil}, &a); err != nil {
		t.Fatal(err)
	}
	if a.Name != "5" || a.Nick != nil {
		t.Errorf("Name = %q, Nick = %v, want 5, nil", a.Name, a.Nick)
	}

	if err := db.Decode(Row{"id": "abc"}, &a); err == nil {
		t.Error("Decode() of a bad number succeeded")
	}
	if err := db.Decode(Row{}, a); err != ErrMustBePointer {
		t.Errorf("Decode(struct) error = %v, want %v", err, ErrMustBePointer)
	}
}

func TestDecodeAs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, client := newTestDB()

	client.respond(
		fakeResponse{rows: []Row{{"id": int64(1), "username": "jack", "age": int64(3)}}},
		fakeResponse{},
		fakeResponse{rows: []Row{{"id": int64(1)}, {"id": int64(2), "username": "jim"}}},
		fakeResponse{rows: []Row{{"count": int64(3)}}},
		fakeResponse{rows: []Row{{"id": int64(3), "username": "joe"}}},
		fakeResponse{rows: []Row{{"id": "x"}}},
	)

	u, err := OneAs[User](ctx, db.From(User{}).Where("id", 1)).Await(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if u.Id != 1 || u.Username != "jack" || u.Age == nil || *u.Age != 3 {
		t.Errorf("OneAs() = %+v", u)
	}

	u, err = OneAs[User](ctx, db.From(User{}).Where("id", 2)).Await(ctx)
	if u != nil || err != nil {
		t.Errorf("OneAs() = %v, %v, want nil, nil", u, err)
	}

	users, err := AllAs[User](ctx, db.From(User{})).Await(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 || users[1].Username != "jim" {
		t.Errorf("AllAs() = %+v", users)
	}

	page, err := PageAs[User](ctx, db.From(User{}), PageRow{PageNumber: 2, PageSize: 2}).Await(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalCount != 3 || page.PageCount != 2 || len(page.Rows) != 1 || page.Rows[0].Username != "joe" {
		t.Errorf("PageAs() = %+v", page)
	}

	_, err = AllAs[User](ctx, db.From(User{})).Await(ctx)
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("AllAs() error = %v, want %T", err, numErr)
	}
}
