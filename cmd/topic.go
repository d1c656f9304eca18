package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/syllabus"
)

// addTopicFlags registers the flags that select one topic of a grade.
func addTopicFlags(c *cobra.Command) {
	c.Flags().StringP("subject", "s", "", "Subject name (case-insensitive)")
	c.Flags().IntP("month", "m", 0, "Month of the plan (0 = any)")
	c.Flags().StringP("topic", "t", "", "Topic name (case-insensitive)")
}

// resolveTopic finds the topic named by --grade, --subject, --month and
// --topic in the catalog.
func resolveTopic(cmd *cobra.Command) (syllabus.Key, error) {
	grade, err := resolveGrade(cmd, true)
	if err != nil {
		return syllabus.Key{}, err
	}
	subject, _ := cmd.Flags().GetString("subject")
	month, _ := cmd.Flags().GetInt("month")
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		return syllabus.Key{}, fmt.Errorf("--topic is required")
	}

	if month == 0 {
		ref, ok := syllabus.Find(grade, subject, topic)
		if !ok {
			return syllabus.Key{}, fmt.Errorf("topic %q not found in %s", topic, grade.Label())
		}
		return ref.Key, nil
	}

	plan, ok := syllabus.Month(grade, month)
	if !ok {
		return syllabus.Key{}, fmt.Errorf("%s has no month %d", grade.Label(), month)
	}
	for _, s := range plan.Subjects {
		for _, t := range s.Topics {
			key := syllabus.Key{Grade: grade, Subject: s.Name, Month: month, Topic: t}
			if (subject == "" || equalFold(s.Name, subject)) && equalFold(t, topic) {
				return key, nil
			}
		}
	}
	return syllabus.Key{}, fmt.Errorf("topic %q not found in %s month %d", topic, grade.Label(), month)
}
