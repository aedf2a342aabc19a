package bringup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newPackage(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "include", name), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.xml"), []byte(packageXML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CMakeLists.txt"), []byte(cmakeLists), 0o644))
	return dir
}

func TestSetupRunAmentCMake(t *testing.T) {
	dir := newPackage(t, "rrbot_bringup")
	s, err := New(DefaultTemplates())
	require.NoError(t, err)

	res, err := s.Run(Options{
		PackageDir:         dir,
		PackageName:        "rrbot_bringup",
		BuildType:          "ament_cmake",
		RobotName:          "rrbot",
		DescriptionPackage: "rrbot_description",
	})
	require.NoError(t, err)

	require.Equal(t, []string{
		filepath.Join("config", "rrbot_controllers.yaml"),
		filepath.Join("config", "test_goal_publishers_config.yaml"),
		filepath.Join("launch", "rrbot.launch.py"),
		filepath.Join("launch", "test_forward_position_controller.launch.py"),
		filepath.Join("launch", "test_joint_trajectory_controller.launch.py"),
	}, res.Created)
	require.Empty(t, res.Skipped)
	require.True(t, res.InstallRule)
	require.Contains(t, res.AddedDepends, "rrbot_description")
	require.NotContains(t, res.AddedDepends, "xacro")
	require.Equal(t, []string{filepath.Join("include", "rrbot_bringup"), "include", "src"}, res.Removed)

	launch, err := os.ReadFile(filepath.Join(dir, "launch", "rrbot.launch.py"))
	require.NoError(t, err)
	require.Contains(t, string(launch), `default_value="rrbot_bringup"`)
	require.Contains(t, string(launch), `default_value="rrbot_controllers.yaml"`)
	require.Contains(t, string(launch), `default_value="rrbot_description"`)
	require.NotContains(t, string(launch), "$")

	manifest, err := os.ReadFile(filepath.Join(dir, "package.xml"))
	require.NoError(t, err)
	require.Contains(t, string(manifest), "<exec_depend>controller_manager</exec_depend>")

	cmake, err := os.ReadFile(filepath.Join(dir, "CMakeLists.txt"))
	require.NoError(t, err)
	require.Contains(t, string(cmake), "DIRECTORY config launch")
}

func TestSetupRunIsIdempotent(t *testing.T) {
	dir := newPackage(t, "rrbot_bringup")
	s, err := New(DefaultTemplates())
	require.NoError(t, err)
	opts := Options{
		PackageDir:         dir,
		PackageName:        "rrbot_bringup",
		BuildType:          "ament_cmake",
		RobotName:          "rrbot",
		DescriptionPackage: "rrbot_description",
	}

	_, err = s.Run(opts)
	require.NoError(t, err)
	res, err := s.Run(opts)
	require.NoError(t, err)

	require.Empty(t, res.Created)
	require.Len(t, res.Skipped, 5)
	require.Empty(t, res.AddedDepends)
	require.False(t, res.InstallRule)

	opts.Overwrite = true
	res, err = s.Run(opts)
	require.NoError(t, err)
	require.Len(t, res.Created, 5)
}

func TestSetupRunAmentPython(t *testing.T) {
	dir := newPackage(t, "rrbot_bringup")
	require.NoError(t, os.Remove(filepath.Join(dir, "CMakeLists.txt")))
	s, err := New(DefaultTemplates())
	require.NoError(t, err)

	res, err := s.Run(Options{
		PackageDir:         dir,
		PackageName:        "rrbot_bringup",
		BuildType:          "ament_python",
		RobotName:          "rrbot",
		DescriptionPackage: "rrbot_description",
	})
	require.NoError(t, err)
	require.False(t, res.InstallRule)
	require.Len(t, res.Hints, 1)
	require.Contains(t, res.Hints[0], "setup.py")
	require.Empty(t, res.Removed)
	require.DirExists(t, filepath.Join(dir, "src"))
}

func TestSetupRunValidatesOptions(t *testing.T) {
	s, err := New(DefaultTemplates())
	require.NoError(t, err)

	_, err = s.Run(Options{PackageDir: t.TempDir(), PackageName: "x", DescriptionPackage: "d"})
	require.ErrorContains(t, err, "robot name")
}

func TestSetupRunMissingManifest(t *testing.T) {
	dir := t.TempDir()
	s, err := New(DefaultTemplates())
	require.NoError(t, err)

	_, err = s.Run(Options{PackageDir: dir, PackageName: "x", RobotName: "r", DescriptionPackage: "d"})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSetupFromDirKeepsTemplateMode(t *testing.T) {
	tpl := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tpl, ManifestName), []byte(
		"folders: [scripts]\nfiles:\n  - template: start.sh\n    dest: scripts/start_$ROBOT_NAME$.sh\ninstall: [scripts]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tpl, "start.sh"), []byte("ros2 launch $PKG_NAME$ $ROBOT_NAME$.launch.py\n"), 0o755))

	s, err := NewFromDir(tpl)
	require.NoError(t, err)
	require.Equal(t, tpl, s.Dir)

	dir := newPackage(t, "rrbot_bringup")
	res, err := s.Run(Options{
		PackageDir:         dir,
		PackageName:        "rrbot_bringup",
		BuildType:          "ament_cmake",
		RobotName:          "rrbot",
		DescriptionPackage: "rrbot_description",
	})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join("scripts", "start_rrbot.sh")}, res.Created)

	script := filepath.Join(dir, "scripts", "start_rrbot.sh")
	data, err := os.ReadFile(script)
	require.NoError(t, err)
	require.Equal(t, "ros2 launch rrbot_bringup rrbot.launch.py\n", string(data))
	info, err := os.Stat(script)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestNewFromDirWithoutManifest(t *testing.T) {
	_, err := NewFromDir(t.TempDir())
	require.ErrorIs(t, err, os.ErrNotExist)
}
