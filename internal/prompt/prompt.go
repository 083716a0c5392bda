// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prompt asks the user for the export settings they did not give
// on the command line.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/geo"
)

// maxAttempts is how many times a question is asked before giving up.
const maxAttempts = 3

// ErrNoAnswer is returned when input ends before a valid answer.
var ErrNoAnswer = errors.New("no answer given")

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ask writes question and returns the trimmed answer line.
func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoAnswer
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Locator asks for the user's Maidenhead grid locator and re-asks until it
// decodes. After maxAttempts bad answers the last decode error is returned.
func (p *Prompter) Locator() (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		answer, err := p.ask("Enter your grid locator (e.g. IO83 or IO83qk): ")
		if err != nil {
			return "", err
		}
		if _, err := geo.ParseLocator(answer); err != nil {
			lastErr = err
			fmt.Fprintf(p.out, "%q is not a valid grid locator.\n", answer)
			continue
		}
		return geo.Normalize(answer), nil
	}
	if lastErr == nil {
		lastErr = vgcerrors.ErrInvalidLocator
	}
	return "", lastErr
}

// YesNo asks a yes/no question. An empty answer picks def.
func (p *Prompter) YesNo(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		answer, err := p.ask(fmt.Sprintf("%s %s: ", question, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
	return false, fmt.Errorf("%w: expected y or n", ErrNoAnswer)
}

// PageSize asks how many channels fit in one file. An empty answer picks def.
func (p *Prompter) PageSize(def config.PageSize) (config.PageSize, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		answer, err := p.ask(fmt.Sprintf("Channels per file, 16 or 32 [%d]: ", int(def)))
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return def, nil
		}
		var size config.PageSize
		if err := size.Set(answer); err != nil {
			fmt.Fprintln(p.out, "Please answer 16 or 32.")
			continue
		}
		return size, nil
	}
	return 0, fmt.Errorf("%w: expected 16 or 32", ErrNoAnswer)
}
