package entity

import "testing"

func TestFavoritesSet(t *testing.T) {
	u := User{}

	if !u.AddFavorite("r1") {
		t.Fatal("first add should succeed")
	}
	if u.AddFavorite("r1") {
		t.Fatal("duplicate add should be rejected")
	}
	if !u.HasFavorite("r1") {
		t.Fatal("expected r1 in favorites")
	}

	if !u.RemoveFavorite("r1") {
		t.Fatal("remove of present member should succeed")
	}
	if u.RemoveFavorite("r1") {
		t.Fatal("remove of absent member should be rejected")
	}
	if u.HasFavorite("r1") {
		t.Fatal("r1 should be gone")
	}
}

func TestRemoveFavoriteKeepsOthers(t *testing.T) {
	u := User{Favorites: []string{"a", "b", "c"}}
	if !u.RemoveFavorite("b") {
		t.Fatal("expected removal of b")
	}
	if len(u.Favorites) != 2 || u.Favorites[0] != "a" || u.Favorites[1] != "c" {
		t.Fatalf("unexpected favorites after removal: %v", u.Favorites)
	}
}
