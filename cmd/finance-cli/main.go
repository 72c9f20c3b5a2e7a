package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"finance/internal/client"
	"finance/internal/core"
	applog "finance/internal/log"

	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	app := kingpin.New("finance-cli", "Command line client for the finance transactions API.")
	apiURL := app.Flag("api-url", "Base URL of the API").Envar("FINANCE_API_URL").Default("http://localhost:8081/api").String()
	timeout := app.Flag("timeout", "Request timeout").Default("15s").Duration()
	verbose := app.Flag("verbose", "Verbosity").Short('v').Bool()

	listCmd := app.Command("list", "List a user's transactions, newest first.")
	listUser := listCmd.Flag("user", "User id").Short('u').Required().String()

	summaryCmd := app.Command("summary", "Show a user's balance, income and expense.")
	summaryUser := summaryCmd.Flag("user", "User id").Short('u').Required().String()

	addCmd := app.Command("add", "Record a transaction.")
	addUser := addCmd.Flag("user", "User id").Short('u').Required().String()
	addTitle := addCmd.Flag("title", "Title").Short('t').Required().String()
	addAmount := addCmd.Flag("amount", "Unsigned amount, e.g. 4.50").Short('a').Required().String()
	addCategory := addCmd.Flag("category", "Category id or name").Short('c').Required().String()
	addIncome := addCmd.Flag("income", "Record as income instead of expense").Bool()

	deleteCmd := app.Command("delete", "Delete a transaction.")
	deleteUser := deleteCmd.Flag("user", "User id, used to show the refreshed summary").Short('u').String()
	deleteID := deleteCmd.Arg("id", "Transaction id").Required().Int64()

	categoriesCmd := app.Command("categories", "List the suggested categories.")

	app.Writer(stdout)
	app.ErrorWriter(stderr)
	cmd, err := app.Parse(args)
	if err != nil {
		return err
	}

	logCfg := applog.DefaultConfig()
	logCfg.Output = stderr
	logCfg.Level = slog.LevelWarn
	if *verbose {
		logCfg.Level = slog.LevelDebug
	}
	logCfg.Component = applog.ComponentClient
	logger := applog.New(logCfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	api := client.New(*apiURL)
	notifier := client.NotifierFunc(func(title, message string) {
		fmt.Fprintf(stderr, "%s: %s\n", title, message)
	})

	switch cmd {
	case listCmd.FullCommand():
		txs, err := api.ListTransactions(ctx, *listUser)
		if err != nil {
			return err
		}
		printTransactions(stdout, txs)

	case summaryCmd.FullCommand():
		sum, err := api.Summary(ctx, *summaryUser)
		if err != nil {
			return err
		}
		printSummary(stdout, sum)

	case addCmd.FullCommand():
		category := *addCategory
		if c, ok := client.LookupCategory(category); ok {
			category = c.Name
		}
		ledger := client.NewLedger(api, *addUser, notifier, logger)
		tx, err := ledger.Add(ctx, client.Draft{
			Title:     *addTitle,
			Amount:    *addAmount,
			Category:  category,
			IsExpense: !*addIncome,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Created transaction %d\n", tx.ID)
		printSummary(stdout, ledger.Summary())

	case deleteCmd.FullCommand():
		ledger := client.NewLedger(api, *deleteUser, notifier, logger)
		if err := ledger.Remove(ctx, *deleteID); err != nil {
			return err
		}
		if *deleteUser != "" {
			printSummary(stdout, ledger.Summary())
		}

	case categoriesCmd.FullCommand():
		w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tICON")
		for _, c := range client.Categories {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Icon)
		}
		w.Flush()
	}
	return nil
}

func printTransactions(out io.Writer, txs []core.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(out, "No transactions yet.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTITLE\tCATEGORY\tICON\tAMOUNT")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			strconv.FormatInt(tx.ID, 10),
			client.FormatDate(tx.CreatedAt.In(time.Local)),
			tx.Title,
			tx.Category,
			client.CategoryIcon(tx.Category),
			client.FormatAmount(tx.Amount))
	}
	w.Flush()
}

func printSummary(out io.Writer, sum core.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Balance\t$%s\n", sum.Balance.String())
	fmt.Fprintf(w, "Income\t$%s\n", sum.Income.String())
	fmt.Fprintf(w, "Expenses\t$%s\n", sum.Expense.Abs().String())
	w.Flush()
}
