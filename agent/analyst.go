// Package agent implements the AI portfolio analyst: a chat session primed
// with a serialized summary of the user's trades that answers free-text
// questions about the portfolio. It is a strict consumer of the core: it
// reads Trade records, never writes anything back.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nivesh/folio"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

const systemPrompt = `You are a personal portfolio analyst.
The user's trade history is provided below as CSV (one asset class per section).
Answer questions about positions, performance and concentration from that data.
When the data cannot answer a question, say so rather than guessing.
Amounts are in the currency of each asset class. Be concise.`

// Analyst is a single chat session over the user's trade history.
type Analyst struct {
	chat *genai.Chat
}

// New primes a chat session with the trade summary of every asset class.
// The trades map may omit classes that have never been imported.
func New(ctx context.Context, client *genai.Client, trades map[folio.AssetClass][]folio.Trade) (*Analyst, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	}
	chat, err := client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create analyst chat: %w", err)
	}

	a := &Analyst{chat: chat}
	// Seed the conversation with the data; the model acknowledges and waits.
	seed := "Here is my trade history:\n\n" + Summarize(trades)
	if _, err := chat.Send(ctx, &genai.Part{Text: seed}); err != nil {
		return nil, fmt.Errorf("cannot seed analyst chat: %w", err)
	}
	return a, nil
}

// Ask sends one free-text question and returns the analyst's answer.
func (a *Analyst) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from analyst")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Summarize serializes the trade sets into the compact CSV form the prompt
// carries. Ids are omitted: they mean nothing to the model.
func Summarize(trades map[folio.AssetClass][]folio.Trade) string {
	var b strings.Builder
	for _, class := range folio.AssetClasses {
		set := trades[class]
		if len(set) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s (%s)\n", class, class.Currency())
		b.WriteString("date,ticker,side,quantity,price,net\n")
		for _, t := range set {
			fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%s\n",
				t.Date, t.Ticker, t.Side, t.Quantity, t.Price.Amount(), t.Net.Amount())
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "(no trades imported yet)\n"
	}
	return b.String()
}

const prompt = "folio> "

// Run starts an interactive REPL session with the analyst. The prompts, if
// any, are consumed before reading from r. Type 'bye' (or Ctrl+D) to exit.
func (a *Analyst) Run(ctx context.Context, w io.Writer, r io.Reader, prompts ...string) error {
	fmt.Fprintln(w, "Ask anything about your portfolio. Type 'bye' to exit.")
	reader := bufio.NewReader(r)

	for {
		fmt.Fprint(w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(w, input)
		} else {
			var err error
			input, err = reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, answer)
	}
}
