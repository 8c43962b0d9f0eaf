// Package quiz holds the short neural-network trivia shown beside the game.
package quiz

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Question is one multiple-choice question. An option is correct when it
// contains Keyword, case-insensitively.
type Question struct {
	ID          string
	Prompt      string
	Options     []string
	Keyword     string
	Explanation string
}

// Check reports whether option answers q
func (q Question) Check(option string) bool {
	return strings.Contains(strings.ToLower(option), q.Keyword)
}

// Questions returns the built-in question set
func Questions() []Question {
	return []Question{
		{
			ID:          "activation_1",
			Prompt:      "What is the most common activation function in hidden layers?",
			Options:     []string{"ReLU", "Sigmoid", "Tanh", "Linear"},
			Keyword:     "relu",
			Explanation: "ReLU (Rectified Linear Unit) is widely used because it helps solve the vanishing gradient problem and is computationally efficient.",
		},
		{
			ID:          "layers_1",
			Prompt:      "What does adding more layers to a neural network typically enable?",
			Options:     []string{"Learning more complex patterns", "Faster training", "Less memory usage", "Simpler models"},
			Keyword:     "complex",
			Explanation: "Deeper networks with more layers can learn more complex and abstract patterns in data.",
		},
		{
			ID:          "backprop_1",
			Prompt:      "What is backpropagation used for in neural networks?",
			Options:     []string{"Forward pass", "Weight adjustment", "Data preprocessing", "Model evaluation"},
			Keyword:     "weight",
			Explanation: "Backpropagation is the algorithm used to calculate gradients and update weights during training.",
		},
		{
			ID:          "gradient_1",
			Prompt:      "What problem can occur in very deep neural networks?",
			Options:     []string{"Overfitting", "Vanishing gradients", "Underfitting", "High accuracy"},
			Keyword:     "vanishing",
			Explanation: "Vanishing gradients occur when gradients become very small in deep networks, making early layers learn very slowly.",
		},
	}
}

// Deck cycles through questions in order
type Deck struct {
	questions []Question
	current   int
}

func NewDeck(questions []Question) *Deck {
	return &Deck{questions: questions}
}

func (d *Deck) Current() Question {
	return d.questions[d.current]
}

// Next advances to the following question, wrapping at the end
func (d *Deck) Next() Question {
	d.current = (d.current + 1) % len(d.questions)
	return d.questions[d.current]
}

// Answer checks the 1-based option choice against the current question
func (d *Deck) Answer(choice int) (bool, error) {
	q := d.Current()
	if choice < 1 || choice > len(q.Options) {
		return false, fmt.Errorf("choice %d out of range 1-%d", choice, len(q.Options))
	}
	return q.Check(q.Options[choice-1]), nil
}

// Run asks every question once, reading numbered answers from in. It
// returns the number answered correctly.
func Run(in io.Reader, out io.Writer, deck *Deck) (int, error) {
	scanner := bufio.NewScanner(in)
	correct := 0

	for i := 0; i < len(deck.questions); i++ {
		if i > 0 {
			deck.Next()
		}
		q := deck.Current()

		fmt.Fprintf(out, "\n%s\n", q.Prompt)
		for n, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", n+1, opt)
		}

		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return correct, err
				}
				return correct, io.ErrUnexpectedEOF
			}

			choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil {
				fmt.Fprintln(out, "Enter the number of an option.")
				continue
			}
			ok, err := deck.Answer(choice)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}

			if ok {
				correct++
				fmt.Fprintln(out, "Correct!")
			} else {
				fmt.Fprintln(out, "Not quite.")
			}
			fmt.Fprintln(out, q.Explanation)
			break
		}
	}

	fmt.Fprintf(out, "\nScore: %d/%d\n", correct, len(deck.questions))
	return correct, nil
}

// ErrEmptyDeck is returned when a deck has no questions
var ErrEmptyDeck = errors.New("quiz has no questions")

// Validate checks that a question set is usable
func Validate(questions []Question) error {
	if len(questions) == 0 {
		return ErrEmptyDeck
	}
	for _, q := range questions {
		matches := 0
		for _, opt := range q.Options {
			if q.Check(opt) {
				matches++
			}
		}
		if matches != 1 {
			return fmt.Errorf("question %s: %d options match keyword %q", q.ID, matches, q.Keyword)
		}
	}
	return nil
}
