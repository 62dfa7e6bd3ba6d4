package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/spf13/cobra"
)

func (a *App) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage your tasks",
	}
	cmd.AddCommand(
		a.taskAddCmd(),
		a.taskListCmd(),
		a.taskShowCmd(),
		a.taskEditCmd(),
		a.taskDoneCmd(),
		a.taskRmCmd(),
		a.taskClearCmd(),
	)
	return cmd
}

func (a *App) taskAddCmd() *cobra.Command {
	var in client.TaskInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			t, err := a.client.CreateTask(ctx, in)
			if err != nil {
				return err
			}
			a.printf("Added task %s\n", t.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "task name")
	cmd.Flags().StringVarP(&in.Date, "date", "d", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&in.Time, "time", "t", "", "time of day, HH:MM")
	cmd.Flags().StringVarP(&in.Priority, "priority", "p", "medium", "low, medium or high")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func (a *App) taskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks by date and time",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			tasks, err := a.client.ListTasks(ctx)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				a.printf("No tasks\n")
				return nil
			}
			return a.printTasks(tasks...)
		},
	}
}

func (a *App) taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			t, err := a.client.GetTask(ctx, args[0])
			if err != nil {
				return err
			}
			return a.printTasks(*t)
		},
	}
}

func (a *App) taskEditCmd() *cobra.Command {
	var in client.TaskInput

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's name, date and priority; the time of day is kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			t, err := a.client.UpdateTask(ctx, args[0], in)
			if err != nil {
				return err
			}
			return a.printTasks(*t)
		},
	}
	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "task name")
	cmd.Flags().StringVarP(&in.Date, "date", "d", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&in.Priority, "priority", "p", "", "low, medium or high")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("priority")
	return cmd
}

func (a *App) taskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			if err := a.client.CompleteTask(ctx, args[0]); err != nil {
				return err
			}
			a.printf("Task %s completed\n", args[0])
			return nil
		},
	}
}

func (a *App) taskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			if err := a.client.DeleteTask(ctx, args[0]); err != nil {
				return err
			}
			a.printf("Task %s deleted\n", args[0])
			return nil
		},
	}
}

func (a *App) taskClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all of your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			n, err := a.client.ClearTasks(ctx)
			if err != nil {
				return err
			}
			a.printf("Deleted %d task(s)\n", n)
			return nil
		},
	}
}

func (a *App) printTasks(tasks ...api.Task) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTIME\tPRIORITY\tDONE\tNAME")
	for _, t := range tasks {
		done := ""
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Time, t.Priority, done, t.Name)
	}
	return w.Flush()
}
