package tst_test

import (
	"fmt"

	"github.com/imipolexg/completer/pkg/tst"
)

func ExampleNew() {
	tr := tst.New("cat", "car", "card", "care", "dog")

	fmt.Println(tr.Size())
	fmt.Println(tr.Contains("card"))
	// Output:
	// 5
	// true
}

func ExampleTrie_Completions() {
	tr := tst.New("cat", "car", "card", "care", "dog")

	for _, w := range tr.Completions("car", 0) {
		fmt.Println(w)
	}
	// Output:
	// car
	// card
	// care
}

func ExampleTrie_Completions_limit() {
	tr := tst.New("a", "aa", "aaab", "abc", "def")

	fmt.Println(tr.Completions("a", 2))
	// Output: [a aa]
}

func ExampleTrie_Contains() {
	tr := tst.New("go", "gopher")

	fmt.Println(tr.Contains("go"))
	fmt.Println(tr.Contains("gop"))
	// Output:
	// true
	// false
}
