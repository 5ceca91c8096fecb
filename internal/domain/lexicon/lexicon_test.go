package lexicon_test

import (
	"testing"

	"github.com/elocute/elocute/internal/domain/lexicon"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMatch(t *testing.T) {
	Convey("Given a matcher", t, func() {
		m := lexicon.NewMatcher()

		Convey("When matching single words", func() {
			res := m.Match("I love cricket and I LOVE science", []string{"love", "hate"})

			Convey("Then matching is case-insensitive and counts repeats", func() {
				So(res.Occurrences, ShouldEqual, 2)
				So(res.Terms, ShouldResemble, []string{"love"})
				So(res.Matched(), ShouldBeTrue)
			})
		})

		Convey("When a term appears inside a longer word", func() {
			res := m.Match("He sells goods at the market", []string{"good"})

			Convey("Then it should not match across word boundaries", func() {
				So(res.Occurrences, ShouldEqual, 0)
				So(res.Matched(), ShouldBeFalse)
			})
		})

		Convey("When matching a multi-word phrase", func() {
			res := m.Match("well you know I was, you know, nervous", []string{"you know"})

			Convey("Then contiguous token sequences should match", func() {
				So(res.Occurrences, ShouldEqual, 2)
				So(res.Terms, ShouldResemble, []string{"you know"})
			})
		})

		Convey("When the phrase tokens are separated", func() {
			res := m.Match("you never know", []string{"you know"})

			Convey("Then it should not match", func() {
				So(res.Occurrences, ShouldEqual, 0)
			})
		})

		Convey("When matching contractions", func() {
			res := m.Match("Hello, I'm Asha", []string{"i'm", "i am"})

			Convey("Then the apostrophe form should match as one token", func() {
				So(res.Terms, ShouldResemble, []string{"i'm"})
			})
		})

		Convey("When the transcript is empty", func() {
			res := m.Match("", []string{"hello"})

			Convey("Then the result should be empty, not an error", func() {
				So(res.Occurrences, ShouldEqual, 0)
				So(res.Terms, ShouldBeEmpty)
			})
		})
	})
}

func TestMatchOpening(t *testing.T) {
	Convey("Given a matcher with a five word window", t, func() {
		m := lexicon.NewMatcher(lexicon.WithWindowWords(5))

		Convey("When the text has sentence punctuation", func() {
			res := m.MatchOpening("Good morning everyone. Hello again later on.", []string{"good morning", "hello"})

			Convey("Then only the first sentence is searched", func() {
				So(res.Terms, ShouldResemble, []string{"good morning"})
			})
		})

		Convey("When the text has no punctuation", func() {
			text := "my name is Asha and hello appears too late here"
			res := m.MatchOpening(text, []string{"hello"})

			Convey("Then only the word window is searched", func() {
				So(res.Occurrences, ShouldEqual, 0)
			})

			Convey("And terms inside the window still match", func() {
				res := m.MatchOpening(text, []string{"name"})
				So(res.Occurrences, ShouldEqual, 1)
			})
		})
	})
}

func TestTokenize(t *testing.T) {
	Convey("Given mixed punctuation text", t, func() {
		tokens := lexicon.Tokenize("Hello, everyone! I'm Asha-Marie (age 13).")

		Convey("Then tokens are lowercase words without punctuation", func() {
			So(tokens, ShouldResemble, []string{"hello", "everyone", "i'm", "asha", "marie", "age", "13"})
		})
	})
}
