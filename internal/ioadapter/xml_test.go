package ioadapter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"timetabling-UDP/internal/assignment"
	"timetabling-UDP/internal/model"
)

const sampleProblem = `<?xml version="1.0"?>
<problem>
  <periods>
    <period id="0" index="0" day="0" time="540" duration="60" penalty="0"/>
    <period id="1" index="1" day="0" time="660" duration="60" penalty="1"/>
  </periods>
  <rooms>
    <room id="0" code="R1" capacity="30" altCapacity="20"/>
    <room id="1" code="R2" capacity="10" altCapacity="0"/>
  </rooms>
  <students>
    <student id="1" name="Alice"><unavailable><period>1</period></unavailable></student>
  </students>
  <instructors>
    <instructor id="1" name="Bob"></instructor>
  </instructors>
  <distributions>
    <distribution id="1" type="SAME_DAY" hard="false" penalty="5">
      <exam><id>1</id></exam>
      <exam><id>2</id></exam>
    </distribution>
  </distributions>
  <exams>
    <exam id="1" name="Algebra" students="20">
      <period id="0" weight="0" hard="false"/>
      <period id="1" weight="0" hard="false"/>
      <room id="0" weight="0" hard="false"/>
      <room id="1" weight="0" hard="false"/>
      <student><id>1</id></student>
      <instructor><id>1</id></instructor>
      <distribution><id>1</id></distribution>
    </exam>
    <exam id="2" name="Geometry" students="5">
      <period id="0" weight="0" hard="false"/>
      <period id="1" weight="0" hard="false"/>
      <room id="1" weight="0" hard="false"/>
      <distribution><id>1</id></distribution>
    </exam>
  </exams>
</problem>`

func TestXMLProblemLoaderPopulatesModel(t *testing.T) {
	m := model.NewModel(model.DefaultConfig())
	loader := NewXMLProblemLoader()

	err := loader.Load(strings.NewReader(sampleProblem), m)
	require.NoError(t, err)

	require.Len(t, m.Periods, 2)
	require.Len(t, m.Rooms, 2)
	require.Len(t, m.Exams, 2)
	require.Len(t, m.Students, 1)
	require.Len(t, m.Instructors, 1)
	require.Len(t, m.Distributions, 1)

	exam1 := m.Exams[1]
	require.Equal(t, "Algebra", exam1.Name)
	require.Equal(t, 20, exam1.StudentCount)
	require.ElementsMatch(t, []int{1}, exam1.StudentIDs)
	require.ElementsMatch(t, []int{1}, exam1.InstructorIDs)
	require.True(t, m.Students[1].IsUnavailable(1))
}

func TestXMLProblemLoaderRejectsMalformedXML(t *testing.T) {
	m := model.NewModel(model.DefaultConfig())
	loader := NewXMLProblemLoader()

	err := loader.Load(strings.NewReader("<problem><exams><exam"), m)
	require.Error(t, err)
}

func TestXMLSolutionWriterRoundTripsAssignedPlacements(t *testing.T) {
	m := model.NewModel(model.DefaultConfig())
	loader := NewXMLProblemLoader()
	require.NoError(t, loader.Load(strings.NewReader(sampleProblem), m))

	a := assignment.NewSingleAssignment(m)
	p1 := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	a.Assign(1, p1)

	var buf bytes.Buffer
	writer := NewXMLSolutionWriter()
	require.NoError(t, writer.Save(&buf, m, a))

	out := buf.String()
	require.Contains(t, out, `exam="1"`)
	require.Contains(t, out, `period="0"`)
	require.Contains(t, out, `rooms="0"`)
}
