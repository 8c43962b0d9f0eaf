package main

import (
	"io"

	"go.uber.org/zap"

	"neural-snake/quiz"
)

func runQuiz(in io.Reader, out io.Writer) error {
	questions := quiz.Questions()
	if err := quiz.Validate(questions); err != nil {
		return err
	}

	correct, err := quiz.Run(in, out, quiz.NewDeck(questions))
	logger.Debug("quiz finished", zap.Int("correct", correct), zap.Int("total", len(questions)))
	return err
}
